package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/hhroute/pkg/datastructure"
	helper "github.com/lintang-b-s/hhroute/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/hhroute/pkg/util"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/shortest-path", api.shortestPath)
	group.GET("/route", api.route)
	group.GET("/nearest", api.nearest)
}

// shortestPath between two vertex ids. GET /api/shortest-path?source=&target=
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	query := r.URL.Query()

	request.Source, err = strconv.ParseInt(query.Get("source"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("source is required and must be a valid vertex id"))
		return
	}
	request.Target, err = strconv.ParseInt(query.Get("target"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("target is required and must be a valid vertex id"))
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.ShortestPath(r.Context(), datastructure.Index(request.Source),
		datastructure.Index(request.Target))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// route between two coordinates snapped to their nearest vertices.
func (api *routingAPI) route(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request routeRequest
		err     error
	)

	query := r.URL.Query()

	request.OriginLat, err = util.StringToFloat64(query.Get("origin_lat"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lat is required and must be a valid float"))
		return
	}
	request.OriginLon, err = util.StringToFloat64(query.Get("origin_lon"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lon is required and must be a valid float"))
		return
	}
	request.DestinationLat, err = util.StringToFloat64(query.Get("destination_lat"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lat is required and must be a valid float"))
		return
	}
	request.DestinationLon, err = util.StringToFloat64(query.Get("destination_lon"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lon is required and must be a valid float"))
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.Route(r.Context(), request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) nearest(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = util.StringToFloat64(query.Get("lat"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = util.StringToFloat64(query.Get("lon"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.NearestVertex(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
