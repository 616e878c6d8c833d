package transport

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Request is what every host hands to the cashier, regardless of whether it
// is a long-running server or a function invocation.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   map[string]string
	Body    []byte
}

type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Serve runs one normalised request through handler and collects the result.
func Serve(ctx context.Context, handler http.Handler, req Request) (Response, error) {
	httpReq, err := toHTTPRequest(ctx, req)
	if err != nil {
		return Response{}, err
	}

	rec := newRecorder()
	handler.ServeHTTP(rec, httpReq)
	return rec.response(), nil
}

func toHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u := &url.URL{Path: req.Path}
	if len(req.Query) > 0 {
		q := url.Values{}
		for k, v := range req.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("Content-Type") == "" && len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

type recorder struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newRecorder() *recorder {
	return &recorder{header: http.Header{}}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.body.Write(b)
}

func (r *recorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
}

func (r *recorder) response() Response {
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	headers := make(map[string]string, len(r.header))
	for k := range r.header {
		headers[k] = r.header.Get(k)
	}
	return Response{Status: status, Headers: headers, Body: r.body.Bytes()}
}

// DefaultPrefixes are the routing prefixes the hosts put in front of the API.
var DefaultPrefixes = []string{"/.netlify/functions/api", "/api"}

// StripPrefixes removes the first matching prefix so handlers only ever see
// bare paths such as /deposit. Paths without a prefix pass through.
func StripPrefixes(next http.Handler, prefixes ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		for _, prefix := range prefixes {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				stripped := strings.TrimPrefix(path, prefix)
				if stripped == "" {
					stripped = "/"
				}
				r2 := new(http.Request)
				*r2 = *r
				r2.URL = new(url.URL)
				*r2.URL = *r.URL
				r2.URL.Path = stripped
				r2.URL.RawPath = ""
				next.ServeHTTP(w, r2)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
