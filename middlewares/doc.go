// Package middlewares provides the HTTP middleware stack of the metadata
// service.
//
// # Request ID
//
// RequestID assigns an ID to each request. An upstream X-Request-ID or
// X-Correlation-ID header is reused; otherwise a UUIDv7 is generated. The ID
// is echoed in the response and, with RequestIDExtractor, added to every log
// record.
//
//	app := metadata.New(
//	    metadata.WithLogger("metadata", middlewares.RequestIDExtractor()),
//	    metadata.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover and Timeout
//
// Recover turns panics into a PanicError, rendered as an opaque 500 problem.
// Timeout bounds each request. The handler sees a context carrying the
// deadline, so queries it runs against PostgreSQL are cancelled with it. When
// the deadline passes first the middleware answers 504 itself and discards
// anything the handler writes later.
//
// # CORS
//
// The service is read only, so the default CORS policy allows any origin with
// GET, HEAD and OPTIONS:
//
//	middlewares.CORS(
//	    middlewares.WithAllowOrigins("https://console.example.com"),
//	    middlewares.WithAllowCredentials(),
//	)
//
// # Access log and metrics
//
// AccessLog writes one record per request. Metrics records request count and
// latency on the global OpenTelemetry meter provider, labelled by chi route
// pattern.
//
// # Order
//
//	metadata.WithMiddleware(
//	    middlewares.CORS(),
//	    middlewares.RequestID(),
//	    middlewares.AccessLog(),
//	    middlewares.Metrics(),
//	    middlewares.Recover(),
//	    middlewares.Timeout(5*time.Second),
//	)
package middlewares
