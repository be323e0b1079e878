package server

import (
	_ "embed"
	"net/http"

	"floor_predictor/pkg/httpx/reply"
	"floor_predictor/pkg/rest"
)

//go:embed openapi.json
var openAPIDocument []byte

// Swagger UI page served from CDN assets, pointing at the embedded document.
const docsHTML = `<!DOCTYPE html>
<html>
<head>
<link type="text/css" rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.7/swagger-ui.css">
<title>Floor Predictor API - Swagger UI</title>
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.7/swagger-ui-bundle.js"></script>
<script>
const ui = SwaggerUIBundle({
    url: '/openapi',
    dom_id: '#swagger-ui',
    presets: [
        SwaggerUIBundle.presets.apis,
        SwaggerUIBundle.SwaggerUIStandalonePreset
    ],
    layout: "BaseLayout",
    deepLinking: true
})
</script>
</body>
</html>`

type SystemServer struct{}

func NewSystemServer() SystemServer {
	return SystemServer{}
}

func (s SystemServer) getDocs(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	_, err := w.Write([]byte(docsHTML))

	return err
}

func (s SystemServer) getOpenAPI(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	_, err := w.Write(openAPIDocument)

	return err
}

func (s SystemServer) getPing(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.Ping{Message: "Pong!"})

	return nil
}

func (s SystemServer) redirectToDocs(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, "/docs", http.StatusTemporaryRedirect)

	return nil
}
