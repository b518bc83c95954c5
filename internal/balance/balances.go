// Package balance derives net balances and settlement plans from a ledger
// snapshot. Both operations are pure functions of their inputs; there is no
// state in this package.
package balance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tallyup/tallyup/internal/models"
)

// Compute derives one net balance per person from the given expenses.
//
// Every roster member starts at zero. For each expense the payer is credited
// the full amount they fronted (regardless of their own share), and each split
// participant is debited their share. Ids that appear as payer or split
// participant but are absent from the roster still accumulate a balance entry;
// whether to surface those is the caller's decision.
//
// Accumulation happens in decimal so repeated float addition cannot drift.
// If every expense's splits sum exactly to its amount, the returned balances
// sum to zero; Compute preserves that property but does not enforce it on
// input. Output is sorted by person id so repeated calls on the same snapshot
// compare equal.
func Compute(people []models.Person, expenses []models.Expense) []models.Balance {
	totals := make(map[string]decimal.Decimal, len(people))
	for _, p := range people {
		totals[p.ID] = decimal.Zero
	}

	for _, e := range expenses {
		totals[e.PaidByID] = totals[e.PaidByID].Add(decimal.NewFromFloat(e.Amount))
		for _, s := range e.Splits {
			totals[s.PersonID] = totals[s.PersonID].Sub(decimal.NewFromFloat(s.Amount))
		}
	}

	balances := make([]models.Balance, 0, len(totals))
	for id, amount := range totals {
		balances = append(balances, models.Balance{
			PersonID: id,
			Amount:   amount.InexactFloat64(),
		})
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].PersonID < balances[j].PersonID
	})

	return balances
}
