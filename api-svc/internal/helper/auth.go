package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/quixjob/backend/api-svc/internal/dto"
)

const (
	CookieName = "access_token"

	LocalUserID = "userID"
	LocalUser   = "user"
)

var (
	ErrTokenMissing = errors.New("missing token")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type Auth struct {
	Secret string
	TTL    time.Duration
	now    func() time.Time
}

func SetupAuth(secret string, ttl time.Duration) Auth {
	return Auth{Secret: secret, TTL: ttl, now: time.Now}
}

func (a Auth) clock() time.Time {
	if a.now == nil {
		return time.Now()
	}
	return a.now()
}

func (a Auth) GenerateToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := a.clock()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.TTL)),
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}
	return tokenStr, nil
}

// VerifyToken accepts "<token>" or "Bearer <token>" and reports
// ErrTokenMissing, ErrTokenInvalid or ErrTokenExpired.
func (a Auth) VerifyToken(tokenString string) (dto.AuthClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if scheme, rest, ok := strings.Cut(tokenString, " "); ok && strings.EqualFold(scheme, "bearer") {
		tokenString = strings.TrimSpace(rest)
	} else if strings.EqualFold(tokenString, "bearer") {
		tokenString = ""
	}
	if tokenString == "" {
		return dto.AuthClaims{}, ErrTokenMissing
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(a.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.clock),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return dto.AuthClaims{}, ErrTokenExpired
		}
		return dto.AuthClaims{}, ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return dto.AuthClaims{}, ErrTokenInvalid
	}

	return dto.AuthClaims{
		UserID:    claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SetSessionCookie writes the HTTP-only session cookie.
func (a Auth) SetSessionCookie(ctx *fiber.Ctx, token string, secure bool) {
	ctx.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.TTL.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (a Auth) ClearSessionCookie(ctx *fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// CurrentUserID returns the identity the auth middleware attached.
func CurrentUserID(ctx *fiber.Ctx) (string, error) {
	id, ok := ctx.Locals(LocalUserID).(string)
	if !ok || id == "" {
		return "", errors.New("missing auth user in context")
	}
	return id, nil
}

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errors.New("invalid credentials")
	}
	return nil
}
