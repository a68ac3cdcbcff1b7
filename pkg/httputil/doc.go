// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Response Helpers
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteText(w, http.StatusOK, "text/markdown; charset=utf-8", markdown)
//	httputil.WriteBadRequest(w, "text is required")
//
// # Request Parsing
//
//	var req LintRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//	uri, ok := httputil.RequireQueryOrError(w, r, "uri")
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware(logger),
//		httputil.LoggingMiddleware,
//		httputil.RecoveryMiddleware,
//		httputil.MaxBytesMiddleware(4<<20),
//	)
//
// RequestIDMiddleware stores a request-scoped logger in the context, so it
// must run before the logging and recovery middleware.
package httputil
