package service

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/pantrychef/backend/internal/model"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreateAndValidate(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewSessionService(db, "secret", time.Hour)

	h, token, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ModeProxy, h.APIMode)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, h.ID, claims.HouseholdID)
}

func TestSessionRejectsBadTokens(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewSessionService(db, "secret", time.Hour)
	h, token, err := svc.Create(context.Background())
	require.NoError(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewSessionService(db, "other-secret", time.Hour)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewSessionService(db, "secret", -time.Minute)
	stale, err := expired.GenerateToken(h.ID)
	require.NoError(t, err)
	_, err = svc.ValidateToken(stale)
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, db.Delete(&model.Household{}, "id = ?", h.ID).Error)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
