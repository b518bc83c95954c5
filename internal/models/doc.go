// Package models defines the core domain models for Tallyup.
//
// # Models
//
//   - Person: a participant in the ledger
//   - Group: a reusable, purely organizational collection of people
//   - Expense: one paid expense with its per-person splits
//   - Split: one person's monetary share of one expense
//   - Balance: a person's derived net position (never stored)
//   - Transfer: one step of a settlement plan (never stored)
//
// # Design Principles
//
// 1. **Ids are identity**: people and groups may share names; the string ID is
// the only identity the system relies on.
// 2. **Derived state stays derived**: Balance and Transfer are computed from
// the expense list on every read, never persisted or cached.
// 3. **Avoid circular references**: records reference each other by ID string,
// never by pointer.
// 4. **Permissive records**: an Expense whose splits do not reconcile with its
// amount is stored as-is; consistency is observable through the balance sum,
// not enforced at the model layer.
package models
