package balance

import (
	"github.com/shopspring/decimal"

	"github.com/tallyup/tallyup/internal/models"
)

// settleEpsilon is the threshold below which a residual balance is treated as
// zero, so float noise in the input cannot produce dust transfers.
var settleEpsilon = decimal.NewFromFloat(0.01)

type party struct {
	id     string
	amount decimal.Decimal // always positive
}

// SettlementPlan reduces the given balances to a list of transfers that, if
// executed, bring every balance to (within epsilon) zero.
//
// Greedy matching: each round settles the creditor with the largest remaining
// balance against the debtor with the largest remaining magnitude, for the
// smaller of the two. Both sides are re-selected every round, so a partially
// settled party loses its turn once someone else holds the larger residual.
// Equal magnitudes are broken by person id ascending, so the output is
// deterministic. The greedy plan is not guaranteed to be graph-minimal in the
// general case, but it never needs more than creditors+debtors-1 transfers.
func SettlementPlan(balances []models.Balance) []models.Transfer {
	var creditors, debtors []party
	for _, b := range balances {
		amount := decimal.NewFromFloat(b.Amount)
		switch {
		case amount.GreaterThan(settleEpsilon):
			creditors = append(creditors, party{id: b.PersonID, amount: amount})
		case amount.Neg().GreaterThan(settleEpsilon):
			debtors = append(debtors, party{id: b.PersonID, amount: amount.Neg()})
		}
	}

	var transfers []models.Transfer
	for len(creditors) > 0 && len(debtors) > 0 {
		ci, di := largest(creditors), largest(debtors)
		creditor, debtor := &creditors[ci], &debtors[di]

		amount := decimal.Min(debtor.amount, creditor.amount)
		transfers = append(transfers, models.Transfer{
			FromPersonID: debtor.id,
			ToPersonID:   creditor.id,
			Amount:       amount.InexactFloat64(),
		})

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if debtor.amount.LessThanOrEqual(settleEpsilon) {
			debtors = append(debtors[:di], debtors[di+1:]...)
		}
		if creditor.amount.LessThanOrEqual(settleEpsilon) {
			creditors = append(creditors[:ci], creditors[ci+1:]...)
		}
	}

	return transfers
}

// largest returns the index of the party with the greatest remaining amount,
// ties broken by person id ascending.
func largest(parties []party) int {
	best := 0
	for i := 1; i < len(parties); i++ {
		switch {
		case parties[i].amount.GreaterThan(parties[best].amount):
			best = i
		case parties[i].amount.Equal(parties[best].amount) && parties[i].id < parties[best].id:
			best = i
		}
	}
	return best
}
