package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// txKey is the context key of an open gorm transaction
type txKey struct{}

// TransactionFromContext returns the gorm transaction bound to ctx, if any
func TransactionFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return nil
	}
	return tx
}

// ContextWithTransaction binds tx to ctx so store calls made with it join the transaction
func ContextWithTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFromContext prefers the transaction carried by ctx over the pool
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := TransactionFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// Transaction runs fn inside a gorm transaction. A rolled back transaction
// leaves nothing behind, so a PartialWriteError from fn is reduced to its cause.
func (s *gormStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if TransactionFromContext(ctx) != nil {
		return fn(ctx)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTransaction(ctx, tx))
	})
	var pw *PartialWriteError
	if errors.As(err, &pw) {
		return pw.Err
	}
	return err
}
