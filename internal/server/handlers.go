package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tallyup/tallyup/internal/balance"
	"github.com/tallyup/tallyup/internal/models"
)

type stateResponse struct {
	People   []models.Person  `json:"people"`
	Groups   []models.Group   `json:"groups"`
	Expenses []models.Expense `json:"expenses"`
}

func (s *Server) getState(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, stateResponse{
		People:   s.ledger.People(),
		Groups:   s.ledger.Groups(),
		Expenses: s.ledger.Expenses(),
	})
}

type addPersonRequest struct {
	Name string `json:"name"`
}

func (s *Server) addPerson(w http.ResponseWriter, r *http.Request) {
	var req addPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	person := s.ledger.AddPerson(req.Name)
	s.logger.Info("person added", "person_id", person.ID)
	s.writeJSON(w, http.StatusCreated, person)
}

// deletePerson removes a person. Deleting the acting user or an unknown id is
// a silent no-op, so the response is 204 either way.
func (s *Server) deletePerson(w http.ResponseWriter, r *http.Request) {
	s.ledger.DeletePerson(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

type addGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

func (s *Server) addGroup(w http.ResponseWriter, r *http.Request) {
	var req addGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	group := s.ledger.AddGroup(req.Name, req.MemberIDs)
	s.logger.Info("group added", "group_id", group.ID, "members_count", len(group.MemberIDs))
	s.writeJSON(w, http.StatusCreated, group)
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	s.ledger.DeleteGroup(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

type addExpenseRequest struct {
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	Date        string             `json:"date"`
	PaidByID    string             `json:"paidById"`
	GroupID     string             `json:"groupId"`
	SplitType   models.SplitType   `json:"splitType"`
	Involved    []string           `json:"involved"`
	Shares      map[string]float64 `json:"shares"`
}

// addExpense builds splits from the request and records the expense. Only
// type-level problems are rejected here; a split total that does not
// reconcile with the amount is accepted and surfaces as a non-zero balance
// sum.
func (s *Server) addExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Description == "" {
		s.writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.PaidByID == "" {
		s.writeError(w, http.StatusBadRequest, "paidById is required")
		return
	}
	if req.Amount <= 0 {
		s.writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if !req.SplitType.Valid() {
		s.writeError(w, http.StatusBadRequest, "unknown splitType")
		return
	}

	splits, err := balance.BuildSplits(req.SplitType, req.Amount, req.Involved, req.Shares)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	expense := s.ledger.AddExpense(models.Expense{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		PaidByID:    req.PaidByID,
		GroupID:     req.GroupID,
		Splits:      splits,
		SplitType:   req.SplitType,
	})
	s.logger.Info("expense added",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"split_type", expense.SplitType,
		"splits_count", len(expense.Splits),
	)
	s.writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	s.ledger.DeleteExpense(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// getBalances recomputes net balances from the current snapshot on every
// read, so the response is always consistent with the expense list.
func (s *Server) getBalances(w http.ResponseWriter, _ *http.Request) {
	balances := balance.Compute(s.ledger.People(), s.ledger.Expenses())
	s.writeJSON(w, http.StatusOK, balances)
}

func (s *Server) getSettlements(w http.ResponseWriter, _ *http.Request) {
	balances := balance.Compute(s.ledger.People(), s.ledger.Expenses())
	transfers := balance.SettlementPlan(balances)
	if transfers == nil {
		transfers = []models.Transfer{}
	}
	s.writeJSON(w, http.StatusOK, transfers)
}
