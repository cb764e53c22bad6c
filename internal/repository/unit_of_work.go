package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRepositories are repositories bound to one open transaction.
type TxRepositories struct {
	Accounts AccountRepository
	Profiles ProfileRepositories
}

// UnitOfWork scopes a transaction around several repositories.
type UnitOfWork interface {
	// WithTransaction commits if fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a transaction scope over db.
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWork{db: db}
}

// WithTransaction executes a function within a database transaction.
func (u *unitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, TxRepositories{
			Accounts: NewAccountRepository(tx),
			Profiles: NewProfileRepositories(tx),
		})
	})
}
