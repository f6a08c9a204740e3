package fleet

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore manages per-equipment rate limiters: equipment_id -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(equipmentID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[equipmentID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[equipmentID] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(equipmentID string, equipmentRate rate.Limit, equipmentBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[equipmentID] = rate.NewLimiter(equipmentRate, equipmentBurst)
}
