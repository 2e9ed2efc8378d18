package httputil

import (
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ClientIP returns the host part of r.RemoteAddr. Forwarding headers are not
// read here; when the API runs behind a trusted proxy the router installs
// chi's RealIP middleware, which rewrites RemoteAddr first.
func ClientIP(r *http.Request) string {
	// RemoteAddr is "IP:port"
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// IDParam parses the chi URL parameter name as a positive integer id.
func IDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
