package providers

import (
	"net/http"
	"paywall/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Patch(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type registration struct {
	url     string
	method  string
	handler http.Handler
}

type RouterProvider struct {
	registrations []registration
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(url, http.MethodGet, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(url, http.MethodPost, handler)
}

func (rp *RouterProvider) Patch(url string, handler http.Handler) {
	rp.add(url, http.MethodPatch, handler)
}

func (rp *RouterProvider) add(url string, method string, handler http.Handler) {
	rp.registrations = append(rp.registrations, registration{
		url:     url,
		method:  method,
		handler: handler,
	})
}

// GetRoutes collapses registrations sharing a URL into one route that
// dispatches on method. A ServeMux rejects duplicate patterns, so a URL
// serving both GET and PATCH must be mounted once.
func (rp *RouterProvider) GetRoutes() []structures.Route {
	byURL := make(map[string]map[string]http.Handler)
	order := make([]string, 0, len(rp.registrations))

	for _, reg := range rp.registrations {
		if _, ok := byURL[reg.url]; !ok {
			byURL[reg.url] = make(map[string]http.Handler)
			order = append(order, reg.url)
		}
		byURL[reg.url][reg.method] = reg.handler
	}

	routes := make([]structures.Route, 0, len(order))
	for _, url := range order {
		routes = append(routes, structures.Route{
			Url:     url,
			Handler: methodsHandler(byURL[url]),
		})
	}
	return routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func methodsHandler(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.Method]
		if !ok {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
