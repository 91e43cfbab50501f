package utils

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	who := domain.Identity{ID: "5", Name: "Wang", Role: domain.RoleFinance}
	token, err := GenerateJWT(who, "secret", time.Hour, "iwa", time.Now())
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret", "iwa")
	require.NoError(t, err)
	assert.Equal(t, who, claims.Identity())

	_, err = ParseAndValidateJWT(token, "other-secret", "iwa")
	assert.Error(t, err)

	_, err = ParseAndValidateJWT(token, "secret", "someone-else")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	who := domain.Identity{ID: "1", Name: "Zhang", Role: domain.RoleCustomerManager}
	token, err := GenerateJWT(who, "secret", time.Minute, "iwa", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret", "")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWT_UnknownRole(t *testing.T) {
	token, err := GenerateJWT(domain.Identity{ID: "1", Role: "janitor"}, "secret", time.Hour, "", time.Now())
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret", "")
	assert.Error(t, err)
}
