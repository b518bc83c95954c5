package ledger

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyup/tallyup/internal/models"
)

// failingStore rejects every write, to prove storage failure never blocks or
// rolls back the in-memory mutation.
type failingStore struct{}

var errStoreDown = errors.New("store unreachable")

func (failingStore) UpsertPerson(context.Context, models.Person) error { return errStoreDown }
func (failingStore) DeletePerson(context.Context, string) error { return errStoreDown }
func (failingStore) UpsertGroup(context.Context, models.Group) error { return errStoreDown }
func (failingStore) DeleteGroup(context.Context, string) error { return errStoreDown }
func (failingStore) UpsertExpense(context.Context, models.Expense) error { return errStoreDown }
func (failingStore) DeleteExpense(context.Context, string) error { return errStoreDown }
func (failingStore) LoadState(context.Context) ([]models.Person, []models.Group, []models.Expense, error) {
	return nil, nil, nil, errStoreDown
}
func (failingStore) Close() error { return nil }

func TestNewSeedsActingUser(t *testing.T) {
	l := New(nil, nil)

	people := l.People()
	require.Len(t, people, 1)
	assert.Equal(t, models.ActingUserID, people[0].ID)
	assert.Equal(t, "You", people[0].Name)
}

func TestAddPerson(t *testing.T) {
	l := New(nil, nil)

	alice := l.AddPerson("Alice")
	assert.NotEmpty(t, alice.ID)
	assert.Equal(t, "Alice", alice.Name)

	// Duplicate names are allowed; ids are the identity.
	alice2 := l.AddPerson("Alice")
	assert.NotEqual(t, alice.ID, alice2.ID)
	assert.Len(t, l.People(), 3)
}

func TestDeletePerson(t *testing.T) {
	l := New(nil, nil)
	alice := l.AddPerson("Alice")
	bob := l.AddPerson("Bob")
	l.AddGroup("Trip", []string{alice.ID, bob.ID})

	l.DeletePerson(alice.ID)

	assert.Len(t, l.People(), 2)
	groups := l.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{bob.ID}, groups[0].MemberIDs, "deleted person pruned from group")

	// Unknown id is a no-op.
	l.DeletePerson("nope")
	assert.Len(t, l.People(), 2)
}

func TestDeletePersonProtectsActingUser(t *testing.T) {
	l := New(nil, nil)

	l.DeletePerson(models.ActingUserID)
	l.DeletePerson(models.ActingUserID)

	people := l.People()
	require.Len(t, people, 1)
	assert.Equal(t, models.ActingUserID, people[0].ID)
}

func TestDeletePersonKeepsExpenses(t *testing.T) {
	l := New(nil, nil)
	alice := l.AddPerson("Alice")
	l.AddExpense(models.Expense{
		Description: "Dinner",
		Amount:      40,
		PaidByID:    alice.ID,
		SplitType:   models.SplitEqual,
		Splits:      []models.Split{{PersonID: alice.ID, Amount: 20}, {PersonID: models.ActingUserID, Amount: 20}},
	})

	l.DeletePerson(alice.ID)

	expenses := l.Expenses()
	require.Len(t, expenses, 1)
	assert.Equal(t, alice.ID, expenses[0].PaidByID, "expense keeps dangling payer reference")
}

func TestAddExpensePrepends(t *testing.T) {
	l := New(nil, nil)

	first := l.AddExpense(models.Expense{Description: "First", Amount: 10, PaidByID: "1", SplitType: models.SplitEqual})
	second := l.AddExpense(models.Expense{Description: "Second", Amount: 20, PaidByID: "1", SplitType: models.SplitEqual})

	expenses := l.Expenses()
	require.Len(t, expenses, 2)
	assert.Equal(t, second.ID, expenses[0].ID, "newest expense first")
	assert.Equal(t, first.ID, expenses[1].ID)
	assert.NotZero(t, expenses[0].CreatedAt)
}

func TestDeleteExpenseIdempotent(t *testing.T) {
	l := New(nil, nil)
	e := l.AddExpense(models.Expense{Description: "Taxi", Amount: 15, PaidByID: "1", SplitType: models.SplitExact})

	l.DeleteExpense(e.ID)
	afterFirst := l.Expenses()

	l.DeleteExpense(e.ID)
	afterSecond := l.Expenses()

	assert.Empty(t, afterFirst)
	assert.Equal(t, afterFirst, afterSecond)
}

func TestGroups(t *testing.T) {
	l := New(nil, nil)
	g := l.AddGroup("Flat", []string{"1"})

	require.Len(t, l.Groups(), 1)
	assert.NotEmpty(t, g.ID)
	assert.NotZero(t, g.CreatedAt)

	l.DeleteGroup(g.ID)
	assert.Empty(t, l.Groups())

	l.DeleteGroup(g.ID) // no-op
	assert.Empty(t, l.Groups())
}

func TestStorageFailureDoesNotRollBack(t *testing.T) {
	l := New(failingStore{}, slog.Default())

	p := l.AddPerson("Alice")
	e := l.AddExpense(models.Expense{Description: "Lunch", Amount: 12, PaidByID: p.ID, SplitType: models.SplitEqual})

	assert.Len(t, l.People(), 2, "in-memory view stays authoritative")
	require.Len(t, l.Expenses(), 1)
	assert.Equal(t, e.ID, l.Expenses()[0].ID)

	l.DeletePerson(p.ID)
	assert.Len(t, l.People(), 1)
}

func TestLoad(t *testing.T) {
	l := New(nil, nil)

	l.Load(
		[]models.Person{{ID: "x", Name: "Xena"}},
		[]models.Group{{ID: "g", Name: "Team", MemberIDs: []string{"x"}}},
		[]models.Expense{{ID: "e", Description: "Coffee", Amount: 3, PaidByID: "x", SplitType: models.SplitExact}},
	)

	people := l.People()
	require.Len(t, people, 2, "acting user re-seeded when missing from persisted roster")
	assert.Equal(t, models.ActingUserID, people[0].ID)
	assert.Equal(t, "x", people[1].ID)
	assert.Len(t, l.Groups(), 1)
	assert.Len(t, l.Expenses(), 1)
}
