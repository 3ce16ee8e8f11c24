package store

import (
	"context"
	"sync"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
)

// InMemoryStateStore is a StateStore backed by two maps guarded by one
// mutex, linearizable per process. Good for unit tests and single-node
// deployments where the cache doesn't need to survive a restart.
type InMemoryStateStore struct {
	mu         sync.Mutex
	risk       map[string]*domain.RiskState
	compliance map[string]*domain.ComplianceState
}

func NewInMemoryStateStore() *InMemoryStateStore {
	return &InMemoryStateStore{
		risk:       make(map[string]*domain.RiskState),
		compliance: make(map[string]*domain.ComplianceState),
	}
}

func (s *InMemoryStateStore) GetRiskState(_ context.Context, eventID string) (*domain.RiskState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.risk[eventID]
	if !ok {
		return nil, ErrStateNotFound
	}
	return state, nil
}

func (s *InMemoryStateStore) SetRiskState(_ context.Context, eventID string, state *domain.RiskState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.risk[eventID] = state
	return nil
}

func (s *InMemoryStateStore) GetComplianceState(_ context.Context, eventID string) (*domain.ComplianceState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.compliance[eventID]
	if !ok {
		return nil, ErrStateNotFound
	}
	return state, nil
}

func (s *InMemoryStateStore) SetComplianceState(_ context.Context, eventID string, state *domain.ComplianceState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compliance[eventID] = state
	return nil
}
