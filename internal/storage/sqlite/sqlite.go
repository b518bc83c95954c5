// Package sqlite provides a SQLite-backed implementation of the storage.Store
// interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
//
// Splits and group members are stored in child tables; upserts replace the
// children wholesale inside one transaction, which keeps re-submitting the
// same record idempotent. Person and payer ids are deliberately not foreign
// keys: an expense may reference a person who has since been deleted, and the
// record must survive that.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertPerson inserts or replaces a person by id.
func (s *SQLiteStore) UpsertPerson(ctx context.Context, person models.Person) error {
	var email interface{}
	if person.Email != "" {
		email = person.Email
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO people (id, name, email) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email`,
		person.ID, person.Name, email,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert person: %w", err)
	}
	return nil
}

// DeletePerson removes a person by id.
func (s *SQLiteStore) DeletePerson(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM people WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}

// UpsertGroup inserts or replaces a group and its member list.
func (s *SQLiteStore) UpsertGroup(ctx context.Context, group models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert group: %w", err)
	}

	// Replace members wholesale so the row set always matches the record.
	if _, err := tx.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", group.ID); err != nil {
		return fmt.Errorf("failed to clear group members: %w", err)
	}
	for _, personID := range group.MemberIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, person_id) VALUES (?, ?)",
			group.ID, personID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteGroup removes a group by id; members cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// UpsertExpense inserts or replaces an expense and its splits.
func (s *SQLiteStore) UpsertExpense(ctx context.Context, expense models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID interface{}
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, amount, date, paid_by_id, group_id, split_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   description = excluded.description,
		   amount = excluded.amount,
		   date = excluded.date,
		   paid_by_id = excluded.paid_by_id,
		   group_id = excluded.group_id,
		   split_type = excluded.split_type`,
		expense.ID, expense.Description, expense.Amount, expense.Date,
		expense.PaidByID, groupID, string(expense.SplitType), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert expense: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM splits WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear splits: %w", err)
	}
	for i, split := range expense.Splits {
		var percentage interface{}
		if split.Percentage != 0 {
			percentage = split.Percentage
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO splits (expense_id, position, person_id, amount, percentage) VALUES (?, ?, ?, ?, ?)",
			expense.ID, i, split.PersonID, split.Amount, percentage,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense by id; splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// LoadState reads the full persisted state, with expenses newest first.
func (s *SQLiteStore) LoadState(ctx context.Context) ([]models.Person, []models.Group, []models.Expense, error) {
	people, err := s.loadPeople(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	groups, err := s.loadGroups(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	expenses, err := s.loadExpenses(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return people, groups, expenses, nil
}

func (s *SQLiteStore) loadPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, email FROM people ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		var email sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &email); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		if email.Valid {
			p.Email = email.String
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

func (s *SQLiteStore) loadGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM groups ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for i := range groups {
		memberRows, err := s.db.QueryContext(ctx,
			"SELECT person_id FROM group_members WHERE group_id = ? ORDER BY rowid",
			groups[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to query group members: %w", err)
		}
		for memberRows.Next() {
			var personID string
			if err := memberRows.Scan(&personID); err != nil {
				memberRows.Close()
				return nil, fmt.Errorf("failed to scan group member: %w", err)
			}
			groups[i].MemberIDs = append(groups[i].MemberIDs, personID)
		}
		memberRows.Close()
		if err := memberRows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate group members: %w", err)
		}
	}
	return groups, nil
}

func (s *SQLiteStore) loadExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, date, paid_by_id, group_id, split_type, created_at
		 FROM expenses ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var groupID sql.NullString
		var splitType string
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Date, &e.PaidByID, &groupID, &splitType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if groupID.Valid {
			e.GroupID = groupID.String
		}
		e.SplitType = models.SplitType(splitType)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		splitRows, err := s.db.QueryContext(ctx,
			"SELECT person_id, amount, percentage FROM splits WHERE expense_id = ? ORDER BY position",
			expenses[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to query splits: %w", err)
		}
		for splitRows.Next() {
			var split models.Split
			var percentage sql.NullFloat64
			if err := splitRows.Scan(&split.PersonID, &split.Amount, &percentage); err != nil {
				splitRows.Close()
				return nil, fmt.Errorf("failed to scan split: %w", err)
			}
			if percentage.Valid {
				split.Percentage = percentage.Float64
			}
			expenses[i].Splits = append(expenses[i].Splits, split)
		}
		splitRows.Close()
		if err := splitRows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate splits: %w", err)
		}
	}
	return expenses, nil
}
