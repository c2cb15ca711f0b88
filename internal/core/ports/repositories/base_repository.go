package repositories

import (
	"context"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTx runs fn inside a single unit of work. Every repository call made
	// with the ctx passed to fn joins it. The work commits when fn returns nil
	// and rolls back otherwise, including on context cancellation.
	// Nested calls join the outer unit of work.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RepositoryWithTx is a marker interface for repositories that support transactions
type RepositoryWithTx interface {
	TransactionManager
}
