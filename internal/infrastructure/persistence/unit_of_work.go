package persistence

import (
	"context"

	"github.com/atlascrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type txKey struct{}

// WithTx returns a context carrying the given transaction handle.
// Repositories pick it up through conn and join the transaction.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// conn resolves the DB handle for a call: the transaction embedded in the
// context when one is open, the plain connection otherwise.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// GormUnitOfWork runs application-level units of work inside one database
// transaction. The transaction travels in the context, so every repository
// call made within fn joins it transparently.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a unit of work bound to the given connection
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Do executes fn within a transaction. Nested calls join the transaction
// already carried by the context instead of opening a new one.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}

var _ shared.UnitOfWork = (*GormUnitOfWork)(nil)
