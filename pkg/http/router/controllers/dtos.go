package controllers

import (
	"github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/http/usecases"
)

type shortestPathRequest struct {
	Source int64 `json:"source" validate:"gte=0,lte=4294967294"`
	Target int64 `json:"target" validate:"gte=0,lte=4294967294"`
}

type routeRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

type nearestRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type edgeResponse struct {
	Source uint32 `json:"source"`
	Target uint32 `json:"target"`
	Weight int    `json:"weight"`
}

type shortestPathResponse struct {
	Source   uint32         `json:"source"`
	Target   uint32         `json:"target"`
	Distance int            `json:"distance"`
	Path     string         `json:"path"`
	Edges    []edgeResponse `json:"edges"`
}

func NewShortestPathResponse(res usecases.ShortestPathResult) shortestPathResponse {
	edges := make([]edgeResponse, len(res.Edges))
	for i := range res.Edges {
		edges[i] = newEdgeResponse(&res.Edges[i])
	}
	return shortestPathResponse{
		Source:   uint32(res.Source),
		Target:   uint32(res.Target),
		Distance: res.Distance,
		Path:     res.Polyline,
		Edges:    edges,
	}
}

func newEdgeResponse(e *datastructure.Edge) edgeResponse {
	return edgeResponse{
		Source: uint32(e.GetSource()),
		Target: uint32(e.GetTarget()),
		Weight: e.GetWeight(),
	}
}

type nearestResponse struct {
	Vertex   uint32  `json:"vertex"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Distance float64 `json:"distance_km"`
}

func NewNearestResponse(res usecases.NearestVertexResult) nearestResponse {
	return nearestResponse{
		Vertex:   uint32(res.Vertex),
		Lat:      res.Lat,
		Lon:      res.Lon,
		Distance: res.Distance,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
