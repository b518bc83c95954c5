// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/tallyup/tallyup/internal/models"
)

// Store defines the interface for ledger persistence. Every write is an
// upsert or delete keyed by the record's id and carries the full record, not
// a diff, so re-submitting the same record is idempotent. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the ledger.
type Store interface {
	// UpsertPerson inserts or replaces a person by id.
	UpsertPerson(ctx context.Context, person models.Person) error

	// DeletePerson removes a person by id; missing ids are not an error.
	DeletePerson(ctx context.Context, id string) error

	// UpsertGroup inserts or replaces a group, including its member list.
	UpsertGroup(ctx context.Context, group models.Group) error

	// DeleteGroup removes a group by id; missing ids are not an error.
	DeleteGroup(ctx context.Context, id string) error

	// UpsertExpense inserts or replaces an expense, including its splits.
	UpsertExpense(ctx context.Context, expense models.Expense) error

	// DeleteExpense removes an expense by id; missing ids are not an error.
	DeleteExpense(ctx context.Context, id string) error

	// LoadState reads the full persisted state. Expenses are returned newest
	// first to match the ledger's list order.
	LoadState(ctx context.Context) (people []models.Person, groups []models.Group, expenses []models.Expense, err error)

	// Close releases any resources held by the store.
	Close() error
}
