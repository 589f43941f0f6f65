package repository

import "context"

// TxRepos bundles the repositories scoped to one transaction.
type TxRepos struct {
	Trips    TripRepository
	Bookings BookingRepository
}

// TxManager runs a function inside a single database transaction. The
// booking admission and confirmation sequences span multiple statements and
// must commit or roll back as a unit.
type TxManager interface {
	// WithinTx begins a transaction, calls fn with transaction-scoped
	// repositories, and commits. Any error from fn rolls the transaction
	// back and is returned unchanged.
	WithinTx(ctx context.Context, fn func(TxRepos) error) error
}
