package static

import (
	"slices"
	"strconv"

	"github.com/indigo-web/statik/http"
	"github.com/indigo-web/statik/http/method"
	"github.com/indigo-web/statik/http/status"
	"github.com/indigo-web/statik/router"
	"github.com/indigo-web/statik/webroot"
	"github.com/rs/zerolog"
)

var _ router.Router = new(Router)

// Root is the filesystem the router serves files from.
type Root interface {
	Lookup(target string) (webroot.File, error)
	ContentType(file webroot.File) (string, error)
	Read(file webroot.File) ([]byte, error)
}

// Router serves files of the root for registered methods.
type Router struct {
	root    Root
	log     zerolog.Logger
	methods []method.Method
	allow   string
}

// New returns a router handling the passed methods. If none are passed, every supported
// method is handled.
func New(root Root, log zerolog.Logger, methods ...method.Method) *Router {
	if len(methods) == 0 {
		methods = method.List
	}

	methods = slices.Clone(methods)
	slices.Sort(methods)
	methods = slices.Compact(methods)

	return &Router{
		root:    root,
		log:     log,
		methods: methods,
		allow:   method.Allow(methods...),
	}
}

// Allow returns the value of the Allow header, sent along with 405 responses.
func (r *Router) Allow() string {
	return r.allow
}

func (r *Router) OnRequest(request *http.Request, response *http.Response) {
	file, err := r.root.Lookup(request.Target)
	if err != nil {
		r.internalError(request, response, err)
		return
	}

	if !file.Exists || file.IsDir {
		response.Page(status.NotFound, "Not Found")
		return
	}

	if !slices.Contains(r.methods, request.Method) {
		response.Error(status.MethodNotAllowed).Header("Allow", r.allow)
		return
	}

	switch request.Method {
	case method.GET:
		r.get(request, response, file)
	case method.HEAD:
		r.head(request, response, file)
	default:
		response.Error(status.MethodNotAllowed).Header("Allow", r.allow)
	}
}

func (r *Router) get(request *http.Request, response *http.Response, file webroot.File) {
	if !r.headers(request, response, file) {
		return
	}

	content, err := r.root.Read(file)
	if err != nil {
		r.internalError(request, response, err)
		return
	}

	// the file might have changed since the lookup
	response.
		Header("Content-Length", strconv.Itoa(len(content))).
		String(string(content))
}

func (r *Router) head(request *http.Request, response *http.Response, file webroot.File) {
	r.headers(request, response, file)
}

func (r *Router) headers(request *http.Request, response *http.Response, file webroot.File) bool {
	contentType, err := r.root.ContentType(file)
	if err != nil {
		r.internalError(request, response, err)
		return false
	}

	response.
		Code(status.OK).
		Status("OK").
		Header("Content-Type", contentType).
		Header("Content-Length", strconv.FormatInt(file.Size, 10))

	return true
}

func (r *Router) internalError(request *http.Request, response *http.Response, err error) {
	r.log.Error().
		Err(err).
		Stringer("method", request.Method).
		Str("target", request.Target).
		Msg("failed to serve file")

	response.Error(status.InternalServerError)
}
