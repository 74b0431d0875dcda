package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campus-election/internal/app/models"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: exp, TokenIssuer: "campus-election"})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(time.Hour)

	token, expiresAt, err := svc.GenerateToken(42, "20261234", models.RoleVoter)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.VoterID)
	assert.Equal(t, "20261234", claims.StudentID)
	assert.Equal(t, string(models.RoleVoter), claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidate_Rejections(t *testing.T) {
	svc := newTestService(time.Hour)

	expired, _, err := newTestService(-time.Minute).GenerateToken(1, "", models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateAndExtractClaims(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	foreign, _, err := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "campus-election"}).
		GenerateToken(1, "", models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateAndExtractClaims(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noRole, _, err := svc.GenerateToken(1, "", models.RoleType("GUEST"))
	require.NoError(t, err)
	_, err = svc.ValidateAndExtractClaims(noRole)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{VoterID: 1, Role: "ADMIN"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateAndExtractClaims(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer a.b.c", "a.b.c", false},
		{"a.b.c", "a.b.c", false},
		{"\"Bearer a.b.c\"", "a.b.c", false},
		{"", "", true},
		{"Bearer", "", true},
		{"Basic dXNlcjpwYXNz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
