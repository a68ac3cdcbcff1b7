// Package swagger serves the OpenAPI description of the alloykit HTTP API
// as YAML and JSON, plus a Swagger UI page that loads it.
package swagger
