package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStateStore is a StateStore backed by Redis, JSON-encoding each
// state under a "riskstate:<eventID>" / "compliancestate:<eventID>"
// key. Ordinary SET/GET give the required per-key linearizability;
// no Lua scripting is needed since there's no read-modify-write.
type RedisStateStore struct {
	client *redis.Client
}

func NewRedisStateStore(addr, password string, db int) *RedisStateStore {
	return &RedisStateStore{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func riskKey(eventID string) string       { return "riskstate:" + eventID }
func complianceKey(eventID string) string { return "compliancestate:" + eventID }

func (s *RedisStateStore) GetRiskState(ctx context.Context, eventID string) (*domain.RiskState, error) {
	raw, err := s.client.Get(ctx, riskKey(eventID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	var state domain.RiskState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStateStore) SetRiskState(ctx context.Context, eventID string, state *domain.RiskState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, riskKey(eventID), raw, 0).Err()
}

func (s *RedisStateStore) GetComplianceState(ctx context.Context, eventID string) (*domain.ComplianceState, error) {
	raw, err := s.client.Get(ctx, complianceKey(eventID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	var state domain.ComplianceState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStateStore) SetComplianceState(ctx context.Context, eventID string, state *domain.ComplianceState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, complianceKey(eventID), raw, 0).Err()
}
