package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"beavernorth-backend/pkg/models"
)

type memoryStore struct {
	mu    sync.RWMutex
	leads map[string]models.Lead // keyed by phone hash
}

// NewMemoryStore creates an in-process lead store used when no database is
// configured, so the capture workflow stays demoable end to end.
func NewMemoryStore() LeadStore {
	return &memoryStore{leads: make(map[string]models.Lead)}
}

func (s *memoryStore) Insert(_ context.Context, lead *models.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	lead.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.leads[lead.PhoneHash] = *lead
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) ExistsByPhoneHash(_ context.Context, phoneHash string) (bool, error) {
	s.mu.RLock()
	_, ok := s.leads[phoneHash]
	s.mu.RUnlock()
	return ok, nil
}

func (s *memoryStore) Close() {}
