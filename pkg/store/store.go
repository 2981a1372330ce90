package store

import (
	"context"

	"beavernorth-backend/pkg/models"
)

// LeadStore defines the interface for lead persistence
type LeadStore interface {
	// Insert persists a lead and fills in its ID and CreatedAt
	Insert(ctx context.Context, lead *models.Lead) error
	// ExistsByPhoneHash reports whether a lead with the same phone hash
	// has already been captured.
	ExistsByPhoneHash(ctx context.Context, phoneHash string) (bool, error)
	Close()
}
