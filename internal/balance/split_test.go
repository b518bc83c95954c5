package balance

import (
	"math"
	"testing"

	"github.com/tallyup/tallyup/internal/models"
)

func TestBuildSplits(t *testing.T) {
	tests := []struct {
		name         string
		splitType    models.SplitType
		amount       float64
		involved     []string
		shares       map[string]float64
		wantErr      bool
		validateFunc func(t *testing.T, splits []models.Split)
	}{
		{
			name:      "equal three-way",
			splitType: models.SplitEqual,
			amount:    300,
			involved:  []string{"a", "b", "c"},
			validateFunc: func(t *testing.T, splits []models.Split) {
				if len(splits) != 3 {
					t.Fatalf("got %d splits, want 3", len(splits))
				}
				for _, s := range splits {
					if math.Abs(s.Amount-100) > 0.001 {
						t.Errorf("%s share = %v, want 100", s.PersonID, s.Amount)
					}
				}
			},
		},
		{
			name:      "equal with uneven division",
			splitType: models.SplitEqual,
			amount:    100,
			involved:  []string{"a", "b", "c"},
			validateFunc: func(t *testing.T, splits []models.Split) {
				for _, s := range splits {
					if math.Abs(s.Amount-33.333333) > 0.000001 {
						t.Errorf("%s share = %v, want 33.333333", s.PersonID, s.Amount)
					}
				}
			},
		},
		{
			name:      "equal with nobody involved",
			splitType: models.SplitEqual,
			amount:    100,
			involved:  nil,
			validateFunc: func(t *testing.T, splits []models.Split) {
				if len(splits) != 0 {
					t.Errorf("got %d splits, want 0", len(splits))
				}
			},
		},
		{
			name:      "percentage retains basis",
			splitType: models.SplitPercentage,
			amount:    200,
			involved:  []string{"a", "b"},
			shares:    map[string]float64{"a": 75, "b": 25},
			validateFunc: func(t *testing.T, splits []models.Split) {
				if splits[0].Amount != 150 || splits[0].Percentage != 75 {
					t.Errorf("a split = %+v, want amount 150 pct 75", splits[0])
				}
				if splits[1].Amount != 50 || splits[1].Percentage != 25 {
					t.Errorf("b split = %+v, want amount 50 pct 25", splits[1])
				}
			},
		},
		{
			name:      "percentage not summing to 100 is accepted",
			splitType: models.SplitPercentage,
			amount:    100,
			involved:  []string{"a", "b"},
			shares:    map[string]float64{"a": 50, "b": 30},
			validateFunc: func(t *testing.T, splits []models.Split) {
				total := splits[0].Amount + splits[1].Amount
				if math.Abs(total-80) > 0.001 {
					t.Errorf("split total = %v, want 80 (permissive under-allocation)", total)
				}
			},
		},
		{
			name:      "exact takes shares verbatim",
			splitType: models.SplitExact,
			amount:    100,
			involved:  []string{"a", "b"},
			shares:    map[string]float64{"a": 12.34, "b": 1000},
			validateFunc: func(t *testing.T, splits []models.Split) {
				if splits[0].Amount != 12.34 || splits[1].Amount != 1000 {
					t.Errorf("splits = %+v, want verbatim shares", splits)
				}
			},
		},
		{
			name:      "exact with missing share defaults to zero",
			splitType: models.SplitExact,
			amount:    100,
			involved:  []string{"a"},
			shares:    nil,
			validateFunc: func(t *testing.T, splits []models.Split) {
				if splits[0].Amount != 0 {
					t.Errorf("a share = %v, want 0", splits[0].Amount)
				}
			},
		},
		{
			name:      "unknown split type errors",
			splitType: models.SplitType("weighted"),
			amount:    100,
			involved:  []string{"a"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := BuildSplits(tt.splitType, tt.amount, tt.involved, tt.shares)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildSplits() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}
