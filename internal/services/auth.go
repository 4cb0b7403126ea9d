package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yungbote/payona-backend/internal/platform/logger"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenVerifier validates bearer tokens issued by the account service and
// returns the user they belong to.
type TokenVerifier interface {
	Verify(tokenString string) (uuid.UUID, error)
}

type TokenConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	Leeway    time.Duration
}

// Claims accepts the user id either as "sub" or as the "nameid" claim some
// issuers emit instead.
type Claims struct {
	NameID string `json:"nameid,omitempty"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	log    *logger.Logger
	key    []byte
	parser *jwt.Parser
}

func NewTokenVerifier(log *logger.Logger, cfg TokenConfig) TokenVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	if cfg.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(cfg.Leeway))
	}
	return &jwtVerifier{
		log:    log.With("service", "TokenVerifier"),
		key:    []byte(cfg.SecretKey),
		parser: jwt.NewParser(opts...),
	}
}

func (v *jwtVerifier) Verify(tokenString string) (uuid.UUID, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return uuid.Nil, ErrInvalidToken
	}
	var claims Claims
	token, err := v.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	})
	if err != nil || !token.Valid {
		v.log.Debug("token rejected", "error", err)
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	subject := claims.Subject
	if subject == "" {
		subject = claims.NameID
	}
	userID, err := uuid.Parse(subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return userID, nil
}

// SignToken issues a token for userID. It exists for local tooling and tests;
// production tokens come from the account service.
func SignToken(cfg TokenConfig, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SecretKey))
}
