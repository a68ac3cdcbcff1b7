// Package api provides the HTTP API for linting, formatting, and
// documenting Alloy configurations.
//
// # Overview
//
// Stateless endpoints analyse text sent in the request body. Document
// endpoints operate on a workspace.Session so that an editor integration
// can open, change, and close documents and fetch their latest findings.
//
//	POST   /v1/lint                      {text, path}         -> {findings, summary}
//	POST   /v1/format                    {text, range}        -> {edit, text}
//	POST   /v1/docs?format=              {text, title}        -> markdown, html or json
//	GET    /v1/documents                                      -> open documents
//	PUT    /v1/documents                 {uri, language_id, text} -> {uri, version, findings}
//	DELETE /v1/documents?uri=
//	GET    /v1/documents/diagnostics?uri=                     -> {uri, findings}
//	POST   /v1/documents/format?uri=     {range}              -> {edit}
//	GET    /v1/documents/docs?uri=&format=                    -> markdown, html or json
//	GET    /healthz, /readyz, /metrics
//	GET    /openapi.yaml, /openapi.json, /swagger-ui
//
// Session errors map to status codes: ErrDocumentNotOpen to 404,
// ErrUnsupportedLanguage to 415, ErrInvalidRange to 400.
//
// When Options.RateLimiter is set, /v1 requests are limited per client
// address and over-limit requests get 429.
//
// # Usage
//
//	server := api.NewServer(session, api.Options{Logger: logger, Metrics: metrics, Gatherer: registry})
//	http.ListenAndServe(":8080", server.Handler())
package api
