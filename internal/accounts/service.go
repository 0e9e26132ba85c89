package accounts

import (
	"github.com/cleared-dev/ynabsplit/internal/model"
)

// Service provides in-memory lookup over the active accounts of one budget.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService keeps only active accounts, preserving their order.
func NewService(all []model.Account) *Service {
	active := Active(all)
	byID := make(map[string]model.Account, len(active))
	for _, a := range active {
		byID[a.ID] = a
	}
	return &Service{accounts: active, byID: byID}
}

// Active returns the accounts that are neither deleted nor closed.
func Active(all []model.Account) []model.Account {
	var result []model.Account
	for _, a := range all {
		if a.Active() {
			result = append(result, a)
		}
	}
	return result
}

// All returns all active accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Len returns the number of active accounts.
func (s *Service) Len() int {
	return len(s.accounts)
}

// Get returns an active account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether id is an active account.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}
