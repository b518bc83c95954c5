package models

// SplitType describes how an expense's amount was divided among participants.
type SplitType string

const (
	// SplitEqual divides the amount equally among the involved people.
	SplitEqual SplitType = "equal"

	// SplitPercentage divides the amount by per-person percentages.
	SplitPercentage SplitType = "percentage"

	// SplitExact uses caller-supplied absolute amounts per person.
	SplitExact SplitType = "exact"
)

// Valid reports whether t is one of the known split types.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitPercentage, SplitExact:
		return true
	}
	return false
}

// Split represents one person's share of one expense.
type Split struct {
	// PersonID identifies the participant. The id may reference a person who
	// has since been deleted from the roster; the balance engine tolerates
	// dangling ids.
	PersonID string `json:"personId"`

	// Amount is the actual currency value owed, regardless of split type.
	Amount float64 `json:"amount"`

	// Percentage is the basis used to compute Amount for percentage splits.
	// Zero means unset.
	Percentage float64 `json:"percentage,omitempty"`
}

// Expense represents one paid expense and the liabilities it created.
// Expenses are immutable once created; the only mutation is full deletion.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is what the expense was for (e.g., "Dinner", "Taxi").
	Description string `json:"description"`

	// Amount is the total paid, in currency units. Always positive.
	Amount float64 `json:"amount"`

	// Date is the expense date in ISO format (yyyy-mm-dd).
	Date string `json:"date"`

	// PaidByID is the id of the person who fronted the full amount.
	PaidByID string `json:"paidById"`

	// GroupID optionally associates the expense with a group. Groups never
	// affect balance computation.
	GroupID string `json:"groupId,omitempty"`

	// Splits lists the involved participants' shares. It need not cover the
	// whole roster, and its total is not validated against Amount.
	Splits []Split `json:"splits"`

	// SplitType records how Splits were constructed.
	SplitType SplitType `json:"splitType"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// Balance represents a person's net position across all expenses.
// Positive means the person is owed money, negative means they owe.
// Balances are derived on every read and never stored.
type Balance struct {
	PersonID string  `json:"personId"`
	Amount   float64 `json:"amount"`
}

// Transfer represents one payment of a settlement plan: FromPersonID pays
// ToPersonID the given amount.
type Transfer struct {
	FromPersonID string  `json:"fromPersonId"`
	ToPersonID   string  `json:"toPersonId"`
	Amount       float64 `json:"amount"`
}
