package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// swaggerUICSP lets the docs page pull Swagger UI from its CDN.
const swaggerUICSP = "default-src 'none'; script-src 'unsafe-inline' https://unpkg.com; " +
	"style-src https://unpkg.com; img-src 'self' data: https://unpkg.com; connect-src 'self'"

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Task Management API</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>window.ui = SwaggerUIBundle({url: "/api/docs.json", dom_id: "#swagger-ui"});</script>
</body>
</html>`

type DocsHandler struct {
	spec []byte
}

// NewDocsHandler serves spec, an OpenAPI document already encoded as JSON.
func NewDocsHandler(spec []byte) *DocsHandler {
	return &DocsHandler{spec: spec}
}

func (h *DocsHandler) OpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", h.spec)
}

func (h *DocsHandler) SwaggerUI(c *gin.Context) {
	c.Header("Content-Security-Policy", swaggerUICSP)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerUIPage))
}
