package swaggerkit

import "net/http"

// docReader is a seam so tests can swap the served document
var docReader = func() string {
	return `{"openapi":"3.0.3","info":{"title":"paperscope API","version":"0.1.0"},"paths":{}}`
}

// serveDocJSON serves the OpenAPI skeleton so the UI can load
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(docReader()))
	}
}
