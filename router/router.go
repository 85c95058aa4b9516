package router

import (
	"github.com/indigo-web/statik/http"
)

// Router fills the response for a successfully parsed request. The response is already
// bound to the request's protocol version, and is serialized exactly as the router left it.
// Failures must be reported through the response itself.
type Router interface {
	OnRequest(request *http.Request, response *http.Response)
}

// Func is an adapter allowing to use an ordinary function as a Router.
type Func func(request *http.Request, response *http.Response)

func (f Func) OnRequest(request *http.Request, response *http.Response) {
	f(request, response)
}
