package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Roles recognized inside a token.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleStation  = "STATION"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// Key is used to store/retrieve Claims from a context.Context.
const Key ctxKey = 1

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	UserId string `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"type"`
}

// Authorized returns true if the claims hold one of the provided roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// Auth is used to authenticate clients.
type Auth struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(jwtKey string) *Auth {
	return &Auth{
		key:        []byte(jwtKey),
		accessTTL:  2 * time.Hour,
		refreshTTL: 7 * 24 * time.Hour,
	}
}

// GenerateTokens builds a signed access/refresh token pair for the user.
func (a *Auth) GenerateTokens(userID, role string) (string, string, error) {
	access, err := a.generate(userID, role, "access", a.accessTTL)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refresh, err := a.generate(userID, role, "refresh", a.refreshTTL)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return access, refresh, nil
}

func (a *Auth) generate(userID, role, tokenType string, ttl time.Duration) (string, error) {
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
		UserId: userID,
		Role:   role,
		Type:   tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.key)
}

// ValidateToken recreates the Claims that were used to generate a token.
// It fails if the token was expired or not signed by us.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}

// ValidateRefreshToken checks a refresh token and returns its claims.
func (a *Auth) ValidateRefreshToken(tokenStr string) (Claims, error) {
	claims, err := a.ValidateToken(tokenStr)
	if err != nil {
		return Claims{}, err
	}
	if claims.Type != "refresh" {
		return Claims{}, errors.New("not a refresh token")
	}

	return claims, nil
}
