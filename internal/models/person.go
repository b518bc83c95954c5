package models

// ActingUserID is the id of the distinguished acting user. The record is
// seeded on startup and can never be deleted.
const ActingUserID = "1"

// Person represents one participant in the ledger.
type Person struct {
	// ID is the unique identifier for the person. Ids are the real identity;
	// duplicate names are allowed.
	ID string `json:"id"`

	// Name is the display name of the person.
	Name string `json:"name"`

	// Email is the person's email address. Optional; empty means unset.
	Email string `json:"email,omitempty"`
}

// Group represents a reusable participant list. Groups are purely
// organizational and have no effect on balance computation.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string `json:"name"`

	// MemberIDs is the list of person ids in this group. Ids of deleted
	// people are pruned by the ledger when the person is removed.
	MemberIDs []string `json:"memberIds"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt,omitempty"`
}
