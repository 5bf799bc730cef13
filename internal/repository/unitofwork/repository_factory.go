package unitofwork

import "context"

// RepositoryFactory hands out one UnitOfWork per service call.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
