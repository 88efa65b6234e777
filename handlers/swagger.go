package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>DealCraft API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "dealcraft", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Message": { "type": "object", "properties": { "message": { "type": "string" } } },
      "InsertResult": { "type": "object", "properties": { "acknowledged": { "type": "boolean" }, "insertedId": { "type": "string" } } },
      "DeleteResult": { "type": "object", "properties": { "acknowledged": { "type": "boolean" }, "deletedCount": { "type": "integer" } } },
      "UpdateResult": { "type": "object", "properties": { "acknowledged": { "type": "boolean" }, "matchedCount": { "type": "integer" }, "modifiedCount": { "type": "integer" }, "upsertedCount": { "type": "integer" }, "upsertedId": { "type": "string", "nullable": true } } }
    }
  },
  "paths": {
    "/": { "get": { "summary": "Liveness message", "responses": { "200": { "description": "DealCraft server is running..." } } } },
    "/getToken": { "post": { "summary": "Sign the posted object as a local token valid for one hour", "requestBody": { "content": { "application/json": { "schema": { "type": "object" } } } }, "responses": { "200": { "description": "{token}" } } } },
    "/revokeToken": { "post": { "summary": "Revoke the presented local token", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "{revoked}" }, "401": { "description": "unauthorized access" } } } },
    "/users": { "post": { "summary": "Create a user unless the email exists", "responses": { "200": { "description": "insert result or already-exists message" } } } },
    "/users/{id}": { "delete": { "summary": "Delete a user", "responses": { "200": { "description": "delete result" }, "400": { "description": "invalid id" } } } },
    "/products": {
      "get": { "summary": "List products, optionally by ?email=", "responses": { "200": { "description": "products" } } },
      "post": { "summary": "Create a product", "responses": { "200": { "description": "insert result" } } }
    },
    "/products/recent": { "get": { "summary": "Six most recent products", "responses": { "200": { "description": "projected products" } } } },
    "/products/{id}": {
      "get": { "summary": "Get a product or null", "responses": { "200": { "description": "product" }, "400": { "description": "invalid id" } } },
      "patch": { "summary": "Set name and price", "responses": { "200": { "description": "update result" } } },
      "delete": { "summary": "Delete a product", "responses": { "200": { "description": "delete result" } } }
    },
    "/products/bids/{id}": { "get": { "summary": "Bids on a product, highest first", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "bids" }, "401": { "description": "unauthorized access" } } } },
    "/bids": {
      "get": { "summary": "List bids, optionally by ?email= which must match the caller", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "bids" }, "401": { "description": "unauthorized access" }, "403": { "description": "forbidden access" } } },
      "post": { "summary": "Create a bid", "responses": { "200": { "description": "insert result" } } }
    },
    "/bids/{id}": {
      "get": { "summary": "Get a bid or null", "responses": { "200": { "description": "bid" } } },
      "delete": { "summary": "Delete a bid", "responses": { "200": { "description": "delete result" } } }
    },
    "/uploads/images": { "post": { "summary": "Upload a product image (multipart field image)", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "{key, url}" }, "503": { "description": "image storage not configured" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
