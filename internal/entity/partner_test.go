package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

func TestNewPartnerNormalizesEmail(t *testing.T) {
	p := entity.NewPartner("  Ana Lima ", "  Ana@Exemplo.COM ", "11988887777", "hash", time.Now())

	assert.Equal(t, "Ana Lima", p.Name)
	assert.Equal(t, "ana@exemplo.com", p.Email)
	assert.Equal(t, entity.RolePartner, p.Role)
	assert.Equal(t, entity.PartnerPendingApproval, p.Status)
	assert.True(t, p.CanSignIn())
}

func TestPartnerApprove(t *testing.T) {
	now := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	p := entity.NewPartner("Ana", "ana@exemplo.com", "", "", now)

	require.NoError(t, p.Approve(now.Add(time.Hour)))
	assert.Equal(t, entity.PartnerApproved, p.Status)
	require.NotNil(t, p.ApprovedAt)
	assert.Equal(t, now.Add(time.Hour), *p.ApprovedAt)

	assert.ErrorIs(t, p.Approve(now), entity.ErrInvalidTransition)
	assert.ErrorIs(t, p.Reject(now), entity.ErrInvalidTransition)
}

func TestPartnerRejectBlocksSignIn(t *testing.T) {
	p := entity.NewPartner("Ana", "ana@exemplo.com", "", "", time.Now())

	require.NoError(t, p.Reject(time.Now()))
	assert.Equal(t, entity.PartnerRejected, p.Status)
	assert.False(t, p.CanSignIn())
	assert.Nil(t, p.ApprovedAt)

	assert.ErrorIs(t, p.Approve(time.Now()), entity.ErrInvalidTransition)
}
