package resultstore

import "fmt"

// TransientExternalFailure wraps a result-store error that survived the
// retry budget in withRetry. It is the only error type RecordGame
// returns (Connect returns its open/ping errors wrapped with
// fmt.Errorf); callers log it and drop the write rather than blocking
// the game loop on a database outage.
type TransientExternalFailure struct {
	Op  string
	Err error
}

func (e *TransientExternalFailure) Error() string {
	return fmt.Sprintf("resultstore: %s: %v", e.Op, e.Err)
}

func (e *TransientExternalFailure) Unwrap() error { return e.Err }
