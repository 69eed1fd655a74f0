package auth

import (
	"testing"

	"board-backend/internal/config"
	"board-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func managerWithSecret(secret string) *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "board-backend"
	return NewJWTManager(cfg)
}

func testManager() *JWTManager {
	return managerWithSecret("test-secret")
}

func TestTokenRoundTrip(t *testing.T) {
	mgr := testManager()
	member := &models.Member{ID: "member-1", Username: "alice", Role: models.RoleModerator}

	token, err := mgr.GenerateToken(member)
	assert.NoError(t, err)

	claims, err := mgr.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleModerator, claims.Role)
	assert.Equal(t, "board-backend", claims.Issuer)
}

func TestTokenWrongSecret(t *testing.T) {
	mgr := testManager()
	token, err := mgr.GenerateToken(&models.Member{ID: "member-1", Username: "alice", Role: models.RoleMember})
	assert.NoError(t, err)

	other := managerWithSecret("different-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestTempTokenIsNotAFullToken(t *testing.T) {
	mgr := testManager()
	member := &models.Member{ID: "member-1", Username: "alice", Role: models.RoleMember}

	temp, err := mgr.GenerateTempToken(member)
	assert.NoError(t, err)

	claims, err := mgr.ValidateTempToken(temp)
	assert.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID)
	assert.Equal(t, "2fa_pending", claims.Type)

	// A full session token must not pass as a 2FA pending token
	full, err := mgr.GenerateToken(member)
	assert.NoError(t, err)
	_, err = mgr.ValidateTempToken(full)
	assert.Error(t, err)
}

func TestGarbageToken(t *testing.T) {
	mgr := testManager()
	_, err := mgr.ValidateToken("not.a.token")
	assert.Error(t, err)
}
