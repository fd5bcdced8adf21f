package reconciler

import "time"

const (
	// RetryDelay is the fixed delay before a failed reconcile is retried, whatever the error.
	RetryDelay = time.Second

	// DriftInterval is how long a successfully applied kind waits before it is reconciled again.
	DriftInterval = 30 * time.Second
)
