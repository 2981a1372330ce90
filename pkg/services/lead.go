package services

import (
	"context"
	"fmt"
	"log"

	"beavernorth-backend/pkg/models"
	"beavernorth-backend/pkg/store"
	"beavernorth-backend/pkg/utils"
)

// LeadService persists verified leads and fires the notification side
// effects. Notification failures are logged and never fail the submission.
type LeadService interface {
	Submit(ctx context.Context, lead models.Lead) (string, error)
}

type leadServiceImpl struct {
	store         store.LeadStore
	notifications NotificationService
}

// NewLeadService creates a new lead submission service
func NewLeadService(leadStore store.LeadStore, notifications NotificationService) LeadService {
	return &leadServiceImpl{
		store:         leadStore,
		notifications: notifications,
	}
}

func (s *leadServiceImpl) Submit(ctx context.Context, lead models.Lead) (string, error) {
	lead.PhoneHash = utils.HashString(lead.E164())

	log.Printf("Processing submission for %s (%s)", lead.FullName(), utils.MaskPhone(lead.Phone))

	exists, err := s.store.ExistsByPhoneHash(ctx, lead.PhoneHash)
	if err != nil {
		return "", fmt.Errorf("error checking for existing lead: %w", err)
	}
	if exists {
		log.Printf("Skipping insert for %s: lead already captured", utils.MaskPhone(lead.Phone))
		return lead.PhoneHash, nil
	}

	if err := s.store.Insert(ctx, &lead); err != nil {
		return "", fmt.Errorf("error persisting lead: %w", err)
	}

	// Notification side effects run in the background; their failures are
	// logged inside the notification service and never block the submission.
	go func(captured models.Lead) {
		if _, err := s.notifications.SendLeadEmail(captured); err != nil {
			log.Printf("Lead email notification failed: %v", err)
		}
		s.notifications.SendLeadSMS(captured)
	}(lead)

	return lead.ID, nil
}
