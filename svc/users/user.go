package users

import (
	"context"
	"math"
	"time"
)

// User is the persisted user record.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Page is one page of users plus the total row count.
type Page struct {
	Data  []User `json:"data"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int    `json:"total"`
}

// Store persists users. Implementations enforce email uniqueness and report
// violations as ErrEmailTaken.
type Store interface {
	List(ctx context.Context, limit, offset int) ([]User, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
}

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = math.MaxInt32
)

// Offset returns the row offset of page for the given page size.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// timestamp formats t the way created_at is stored.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
