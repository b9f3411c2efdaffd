package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor hands out database handles. Every logical write runs inside
// exactly one WithinTransaction call; returning an error from fn rolls back
// everything fn did.
type Transactor interface {
	Conn(ctx context.Context) *gorm.DB
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
