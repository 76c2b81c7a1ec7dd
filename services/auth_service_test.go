package services

import (
	"testing"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authFixture(t *testing.T) (*AuthService, *models.User) {
	t.Helper()
	db := setupTestDB(t)
	users := NewUserService(db)
	accountant := models.RoleAccountant
	u, err := users.Create(bg, UserFields{Username: strPtr("ledger"), Password: strPtr("s3cret!"), Role: &accountant})
	require.NoError(t, err)
	return NewAuthService(users, NewDBTokenStore(db), "test-secret", 0, 0), u
}

func TestLogin(t *testing.T) {
	auth, u := authFixture(t)

	pair, err := auth.Login(bg, "ledger", "s3cret!")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	claims, err := auth.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, models.RoleAccountant, claims.Role)

	_, err = auth.ParseAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.Login(bg, "ledger", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(bg, "nobody", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(bg, "", "")
	assert.True(t, IsValidation(err))
}

func TestLogin_InactiveUser(t *testing.T) {
	auth, u := authFixture(t)
	inactive := false
	_, err := auth.Users.Update(bg, u.ID, UserFields{IsActive: &inactive})
	require.NoError(t, err)

	_, err = auth.Login(bg, "ledger", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotation(t *testing.T) {
	auth, _ := authFixture(t)

	pair, err := auth.Login(bg, "ledger", "s3cret!")
	require.NoError(t, err)

	next, err := auth.Refresh(bg, pair.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Refresh, next.Refresh)

	_, err = auth.Refresh(bg, pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.Refresh(bg, next.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.Refresh(bg, next.Refresh)
	assert.NoError(t, err)
}

func TestAccessTokenExpiry(t *testing.T) {
	auth, _ := authFixture(t)
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	auth.Now = func() time.Time { return issued }

	pair, err := auth.Login(bg, "ledger", "s3cret!")
	require.NoError(t, err)

	auth.Now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = auth.ParseAccess(pair.Access)
	assert.NoError(t, err)

	auth.Now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = auth.ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccess_RejectsForeignTokens(t *testing.T) {
	auth, u := authFixture(t)

	other := NewAuthService(auth.Users, auth.Store, "another-secret", 0, 0)
	pair, err := other.Login(bg, "ledger", "s3cret!")
	require.NoError(t, err)
	_, err = auth.ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: u.ID, TokenType: tokenTypeAccess})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = auth.ParseAccess(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.ParseAccess("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
