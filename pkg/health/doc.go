// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs a set of [Checks] concurrently and answers 503 when
// any of them fails, times out or panics.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(state),
//	}, health.WithTimeout(3*time.Second)))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the client
// sends Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "unhealthy", "error": "db: healthcheck failed\n..."}
//	  }
//	}
//
// Failed checks are logged at warn level. A check that outlives the timeout
// reports [ErrCheckTimeout]; a panicking check reports [ErrCheckFailed].
package health
