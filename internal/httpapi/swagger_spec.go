//go:build swagger

package httpapi

import "github.com/swaggo/swag"

// Minimal spec registration so the UI resolves /swagger/doc.json without a
// separate docs package. Regenerate with `swag init` for full schemas.
const swaggerTemplate = `{
  "schemes": ["http"],
  "swagger": "2.0",
  "info": {
    "title": "progressd API",
    "description": "Per-tenant task-progress notification hub.",
    "version": "1.0"
  },
  "basePath": "/"
}`

func init() {
	swag.Register(swag.Name, &swag.Spec{
		InfoInstanceName: "swagger",
		SwaggerTemplate:  swaggerTemplate,
	})
}
