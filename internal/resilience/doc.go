// Package resilience groups the fault tolerance pieces of the service.
//
// circuitbreaker wraps the store handle so that repeated database failures
// open the circuit and requests fail fast with ErrOpenState (HTTP 503)
// until the store recovers:
//
//	guarded := circuitbreaker.NewDBCircuitBreaker(db)
//	briefs := postgres.NewBriefRepo(guarded)
package resilience
