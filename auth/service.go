package auth

import (
	"strconv"
	"time"

	"github.com/go-pkgz/auth/v2/token"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer   = "artfolio"
	tokenTTL = time.Hour * 24 // JWT token duration
)

// Service issues and verifies the bearer credentials handed out at signup
// and login. The account id travels in the token's user claim.
type Service struct {
	tokens *token.Service
}

// NewService builds a credential service signing with the given secret.
func NewService(secret string) *Service {
	tokens := token.NewService(token.Opts{
		SecretReader: token.SecretFunc(func(id string) (string, error) {
			return secret, nil
		}),
		TokenDuration: tokenTTL,
		Issuer:        issuer,
		DisableXSRF:   true,
	})
	return &Service{tokens: tokens}
}

// IssueToken creates a signed credential for the given account.
func (s *Service) IssueToken(accountID uint, name, email string) (string, error) {
	claims := token.Claims{
		User: &token.User{
			ID:    strconv.FormatUint(uint64(accountID), 10),
			Name:  name,
			Email: email,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  []string{issuer},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return s.tokens.Token(claims)
}

// ParseToken verifies a credential and returns the account id it carries.
// Expired, tampered and malformed tokens all fail here.
func (s *Service) ParseToken(tokenStr string) (uint, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return 0, err
	}
	// Parse only verifies the signature; expiry is a separate check.
	if s.tokens.IsExpired(claims) {
		return 0, jwt.ErrTokenExpired
	}
	if claims.User == nil {
		return 0, jwt.ErrTokenInvalidClaims
	}
	id, err := strconv.ParseUint(claims.User.ID, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// HashPassword returns the bcrypt hash stored in place of the password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(hashed), err
}

// CheckPasswordHash reports whether password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
