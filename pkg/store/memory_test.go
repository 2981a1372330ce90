package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beavernorth-backend/pkg/models"
)

func TestMemoryStore_InsertAndExists(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	exists, err := s.ExistsByPhoneHash(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, exists)

	lead := &models.Lead{FirstName: "Jane", Phone: "4165551234", PhoneHash: "abc"}
	require.NoError(t, s.Insert(context.Background(), lead))

	assert.NotEmpty(t, lead.ID)
	assert.False(t, lead.CreatedAt.IsZero())

	exists, err = s.ExistsByPhoneHash(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, exists)
}
