package helper

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	a := SetupAuth("secret", time.Hour)

	token, err := a.GenerateToken("user-1")
	require.NoError(t, err)

	claims, err := a.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 2*time.Second)

	claims, err = a.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = a.GenerateToken("")
	assert.Error(t, err)
}

func TestVerifyTokenDistinguishesFailures(t *testing.T) {
	a := SetupAuth("secret", time.Hour)

	_, err := a.VerifyToken("")
	assert.ErrorIs(t, err, ErrTokenMissing)

	_, err = a.VerifyToken("Bearer ")
	assert.ErrorIs(t, err, ErrTokenMissing)

	_, err = a.VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	other := SetupAuth("other-secret", time.Hour)
	foreign, err := other.GenerateToken("user-1")
	require.NoError(t, err)
	_, err = a.VerifyToken(foreign)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	past := a
	past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := past.GenerateToken("user-1")
	require.NoError(t, err)
	_, err = a.VerifyToken(stale)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTokenRejectsOtherAlgorithms(t *testing.T) {
	a := SetupAuth("secret", time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = a.VerifyToken(s)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyTokenRequiresExpiry(t *testing.T) {
	a := SetupAuth("secret", time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = a.VerifyToken(s)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NoError(t, VerifyPassword("hunter22", hash))
	assert.Error(t, VerifyPassword("hunter23", hash))
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP(6)
		require.NoError(t, err)
		assert.Len(t, otp, 6)
		assert.NotEqual(t, byte('0'), otp[0])
		assert.Empty(t, strings.Trim(otp, "0123456789"))
	}
}

func TestOTPEqual(t *testing.T) {
	assert.True(t, OTPEqual("123456", "123456"))
	assert.False(t, OTPEqual("123456", "654321"))
	assert.False(t, OTPEqual("", ""))
	assert.False(t, OTPEqual("123456", ""))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("x")))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsDuplicateKey(&pgconn.PgError{Code: "23503"}))
}
