// Package repository is a small generic gorm store. Domain services compose
// it instead of writing per-entity CRUD.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/smallbiznis/invoicely/pkg/db/option"
)

type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	Save(ctx context.Context, resource *T) error
	Delete(ctx context.Context, resourceID int64) error
	Count(ctx context.Context, query *T) (int64, error)
}
