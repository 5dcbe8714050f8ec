package routerhelper

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup registers httprouter handles below a common path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

func (rg *RouteGroup) Group(prefix string) *RouteGroup {
	return NewRouteGroup(rg.router, rg.path(prefix))
}

func (rg *RouteGroup) path(p string) string {
	return path.Join(rg.prefix, p)
}

func (rg *RouteGroup) Handle(method, p string, handle httprouter.Handle) {
	rg.router.Handle(method, rg.path(p), handle)
}

func (rg *RouteGroup) GET(p string, handle httprouter.Handle) {
	rg.Handle(http.MethodGet, p, handle)
}

func (rg *RouteGroup) POST(p string, handle httprouter.Handle) {
	rg.Handle(http.MethodPost, p, handle)
}
