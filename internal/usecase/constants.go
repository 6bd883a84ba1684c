package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. This prevents long-running postings from blocking party
	// rows.
	DefaultTransactionTimeout = 10 * time.Second

	// Reversal reference suffixes appended to the source document id.
	ReversalSuffixCancellation = "cancellation"
	ReversalSuffixAdjustment   = "adjustment"
)
