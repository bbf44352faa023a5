package service

import (
	"errors"
	"fmt"
	"time"

	"vtu-billing/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// clockSkew tolerated between the issuing account service and this one.
const clockSkew = 30 * time.Second

var errMissingSubject = errors.New("token has no subject")

// accessClaims is the token body minted by the account service.
type accessClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTTokenService validates HS256 access tokens. Issuing happens elsewhere.
type JWTTokenService struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTTokenService creates a validator. An empty issuer accepts any issuer.
func NewJWTTokenService(secret, issuer string) *JWTTokenService {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &JWTTokenService{secret: []byte(secret), parser: jwt.NewParser(opts...)}
}

func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	var claims accessClaims
	_, err := s.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	if claims.Subject == "" {
		return nil, errMissingSubject
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("token subject %q is not a user id: %w", claims.Subject, err)
	}

	return &ports.TokenClaims{UserID: userID, Email: claims.Email}, nil
}
