// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms),
tagged with a request_id also returned in the X-Request-ID header.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with the Content-Type header.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

ParseJSONBody rejects unknown fields and bodies over MaxBodyBytes.

# Client IP Extraction

	ip := middleware.GetClientIP(r) // behind a trusted proxy
	ip := middleware.RemoteIP(r)    // peer address only

Forwarding headers are set by the client unless a proxy overwrites them,
so the pending-submission guard uses RemoteIP unless -trust-proxy is set.
*/
package middleware
