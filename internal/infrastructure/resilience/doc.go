// Package resilience provides a circuit breaker for outbound calls.
//
// The component store client wraps every request in a Breaker so a
// struggling store sheds load instead of stacking retries:
//
//	breaker := resilience.New("sandbox", resilience.Settings{
//	    Timeout: 30 * time.Second,
//	    ReadyToTrip: func(counts resilience.Counts) bool {
//	        return counts.ConsecutiveFailures >= 10
//	    },
//	})
//	result, err := breaker.Execute(func() (interface{}, error) {
//	    return client.R().Get(url)
//	})
//
// States: closed (normal operation), open (failing fast after trips),
// half-open (bounded probes after the timeout). The vision package
// carries its own breaker typed to the Backend interface; this one
// stays generic for request/response clients.
package resilience
