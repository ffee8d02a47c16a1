package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestContext exposes the parts of an inbound request that
// authentication reads.
type RequestContext interface {
	Header(name string) (string, bool)
	Cookie(name string) (string, bool)
}

// HTTPRequest adapts a *http.Request.
type HTTPRequest struct {
	*http.Request
}

func (r HTTPRequest) Header(name string) (string, bool) {
	values, ok := r.Request.Header[http.CanonicalHeaderKey(name)]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (r HTTPRequest) Cookie(name string) (string, bool) {
	cookie, err := r.Request.Cookie(name)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

// GinRequest adapts the request held by a gin context.
func GinRequest(c *gin.Context) RequestContext {
	return HTTPRequest{Request: c.Request}
}
