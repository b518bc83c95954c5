// Package ledger owns the canonical in-memory collections of people, groups,
// and expenses for a session. All mutation goes through a Ledger instance; the
// in-memory view is authoritative, and persistence is a best-effort side
// effect whose failure is logged, never propagated.
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

// Ledger holds the session state. The zero value is not usable; use New.
type Ledger struct {
	mu       sync.RWMutex
	people   []models.Person
	groups   []models.Group
	expenses []models.Expense // newest first

	store  storage.Store // nil disables persistence
	logger *slog.Logger
}

// New creates a Ledger seeded with the acting user. store may be nil, in which
// case the ledger is purely in-memory. logger may be nil to use the default.
func New(store storage.Store, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{
		people: []models.Person{actingUser()},
		store:  store,
		logger: logger,
	}
	l.persistPerson(l.people[0])
	return l
}

func actingUser() models.Person {
	return models.Person{ID: models.ActingUserID, Name: "You"}
}

// Load replaces the in-memory state with persisted records, typically at
// startup. The acting user is re-seeded if the persisted roster lacks it.
func (l *Ledger) Load(people []models.Person, groups []models.Group, expenses []models.Expense) {
	l.mu.Lock()
	defer l.mu.Unlock()

	hasActingUser := false
	for _, p := range people {
		if p.ID == models.ActingUserID {
			hasActingUser = true
			break
		}
	}
	if !hasActingUser {
		people = append([]models.Person{actingUser()}, people...)
	}

	l.people = people
	l.groups = groups
	l.expenses = expenses
}

// People returns a copy of the roster.
func (l *Ledger) People() []models.Person {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Person(nil), l.people...)
}

// Groups returns a copy of the group list.
func (l *Ledger) Groups() []models.Group {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Group(nil), l.groups...)
}

// Expenses returns a copy of the expense list, newest first.
func (l *Ledger) Expenses() []models.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Expense(nil), l.expenses...)
}

// AddPerson appends a new person to the roster and returns the stored record.
// Names are not required to be unique; the generated id is the identity.
func (l *Ledger) AddPerson(name string) models.Person {
	person := models.Person{ID: uuid.New().String(), Name: name}

	l.mu.Lock()
	l.people = append(l.people, person)
	l.mu.Unlock()

	l.persistPerson(person)
	return person
}

// DeletePerson removes a person from the roster and prunes their id from
// every group's member list. Deleting the acting user is a silent no-op, as
// is deleting an unknown id. Past expenses referencing the id keep their
// dangling reference.
func (l *Ledger) DeletePerson(id string) {
	if id == models.ActingUserID {
		return
	}

	l.mu.Lock()
	found := false
	for i, p := range l.people {
		if p.ID == id {
			l.people = append(l.people[:i], l.people[i+1:]...)
			found = true
			break
		}
	}

	var changedGroups []models.Group
	if found {
		for i := range l.groups {
			members := l.groups[i].MemberIDs
			pruned := members[:0:0]
			for _, mid := range members {
				if mid != id {
					pruned = append(pruned, mid)
				}
			}
			if len(pruned) != len(members) {
				l.groups[i].MemberIDs = pruned
				changedGroups = append(changedGroups, l.groups[i])
			}
		}
	}
	l.mu.Unlock()

	if !found {
		return
	}

	if l.store != nil {
		if err := l.store.DeletePerson(context.Background(), id); err != nil {
			l.logger.Error("failed to delete person from storage", "person_id", id, "error", err)
		}
	}
	for _, g := range changedGroups {
		l.persistGroup(g)
	}
}

// AddGroup creates a group with the given members and returns the stored
// record. Member ids are not checked against the roster.
func (l *Ledger) AddGroup(name string, memberIDs []string) models.Group {
	group := models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		MemberIDs: append([]string(nil), memberIDs...),
		CreatedAt: time.Now().Unix(),
	}

	l.mu.Lock()
	l.groups = append(l.groups, group)
	l.mu.Unlock()

	l.persistGroup(group)
	return group
}

// DeleteGroup removes a group by id; unknown ids are a no-op.
func (l *Ledger) DeleteGroup(id string) {
	l.mu.Lock()
	found := false
	for i, g := range l.groups {
		if g.ID == id {
			l.groups = append(l.groups[:i], l.groups[i+1:]...)
			found = true
			break
		}
	}
	l.mu.Unlock()

	if found && l.store != nil {
		if err := l.store.DeleteGroup(context.Background(), id); err != nil {
			l.logger.Error("failed to delete group from storage", "group_id", id, "error", err)
		}
	}
}

// AddExpense assigns a fresh id, prepends the expense (list order is
// newest-first), and returns the stored record. No reconciliation of the
// split total against the amount happens here; validation, if any, is the
// caller's responsibility.
func (l *Ledger) AddExpense(expense models.Expense) models.Expense {
	expense.ID = uuid.New().String()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	l.mu.Lock()
	l.expenses = append([]models.Expense{expense}, l.expenses...)
	l.mu.Unlock()

	l.persistExpense(expense)
	return expense
}

// DeleteExpense removes an expense by id; unknown ids are a no-op, so the
// operation is idempotent.
func (l *Ledger) DeleteExpense(id string) {
	l.mu.Lock()
	found := false
	for i, e := range l.expenses {
		if e.ID == id {
			l.expenses = append(l.expenses[:i], l.expenses[i+1:]...)
			found = true
			break
		}
	}
	l.mu.Unlock()

	if found && l.store != nil {
		if err := l.store.DeleteExpense(context.Background(), id); err != nil {
			l.logger.Error("failed to delete expense from storage", "expense_id", id, "error", err)
		}
	}
}

func (l *Ledger) persistPerson(p models.Person) {
	if l.store == nil {
		return
	}
	if err := l.store.UpsertPerson(context.Background(), p); err != nil {
		l.logger.Error("failed to persist person", "person_id", p.ID, "error", err)
	}
}

func (l *Ledger) persistGroup(g models.Group) {
	if l.store == nil {
		return
	}
	if err := l.store.UpsertGroup(context.Background(), g); err != nil {
		l.logger.Error("failed to persist group", "group_id", g.ID, "error", err)
	}
}

func (l *Ledger) persistExpense(e models.Expense) {
	if l.store == nil {
		return
	}
	if err := l.store.UpsertExpense(context.Background(), e); err != nil {
		l.logger.Error("failed to persist expense", "expense_id", e.ID, "error", err)
	}
}
