package balance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallyup/tallyup/internal/models"
)

// sharePrecision is the decimal precision used when dividing an amount into
// equal shares.
const sharePrecision = 6

// BuildSplits constructs the per-person splits for an expense.
//
// For equal splits the amount is divided by the number of involved people;
// with nobody involved the result is an empty split list, which leaves the
// expense with zero total liability. For percentage splits each person's
// share is amount * shares[id] / 100, with the percentage retained on the
// Split. For exact splits shares[id] is the share directly.
//
// BuildSplits is deliberately permissive: percentages that do not sum to 100
// and exact shares that do not reconcile with the amount are accepted, and
// the mismatch later shows up as a non-zero balance sum. Only an unknown
// split type is an error.
func BuildSplits(splitType models.SplitType, amount float64, involved []string, shares map[string]float64) ([]models.Split, error) {
	switch splitType {
	case models.SplitEqual:
		splits := make([]models.Split, 0, len(involved))
		if len(involved) == 0 {
			return splits, nil
		}
		share := decimal.NewFromFloat(amount).
			DivRound(decimal.NewFromInt(int64(len(involved))), sharePrecision).
			InexactFloat64()
		for _, id := range involved {
			splits = append(splits, models.Split{PersonID: id, Amount: share})
		}
		return splits, nil

	case models.SplitPercentage:
		splits := make([]models.Split, 0, len(involved))
		for _, id := range involved {
			pct := shares[id]
			share := decimal.NewFromFloat(amount).
				Mul(decimal.NewFromFloat(pct)).
				DivRound(decimal.NewFromInt(100), sharePrecision).
				InexactFloat64()
			splits = append(splits, models.Split{PersonID: id, Amount: share, Percentage: pct})
		}
		return splits, nil

	case models.SplitExact:
		splits := make([]models.Split, 0, len(involved))
		for _, id := range involved {
			splits = append(splits, models.Split{PersonID: id, Amount: shares[id]})
		}
		return splits, nil
	}

	return nil, fmt.Errorf("unknown split type %q", splitType)
}
