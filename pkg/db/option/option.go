// Package option provides composable query options for the generic store.
package option

import (
	"fmt"

	"gorm.io/gorm"
)

type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type queryOptionFunc func(*gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

type Operator string

const (
	EQ  Operator = "="
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="
)

// Condition is one field comparison added to the WHERE clause. Field names
// come from code, never from user input.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

func ApplyOperator(c Condition) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s %s ?", c.Field, c.Operator), c.Value)
	})
}

// QuerySortBy sorts by a caller-requested column, restricted to an allow
// list. Unknown or disallowed fields fall back to the stable default order.
type QuerySortBy struct {
	Allow map[string]bool
	Field string
	Desc  bool
}

func WithSortBy(s QuerySortBy) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if s.Field != "" && s.Allow[s.Field] {
			direction := "asc"
			if s.Desc {
				direction = "desc"
			}
			return db.Order(fmt.Sprintf("%s %s, id %s", s.Field, direction, direction))
		}
		return db.Order("created_at desc, id desc")
	})
}

func WithLimit(n int) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if n <= 0 {
			return db
		}
		return db.Limit(n)
	})
}
