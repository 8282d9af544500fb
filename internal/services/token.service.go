package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"songvault/config"
	"songvault/internal/apperrors"
	"songvault/internal/models"
	"songvault/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"

	tokenIssuer = "songvault"
)

type TokenClaims struct {
	UserID    int       `json:"user_id"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// SessionID is the jti shared by an access/refresh pair
func (c *TokenClaims) SessionID() string {
	return c.ID
}

type TokenPair struct {
	Access  string
	Refresh string
}

// TokenService issues HS256 access/refresh pairs bound to a stored session.
// Logging out deletes the session, which invalidates both tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	sessions   SessionStore
	now        func() time.Time
	log        logger.Logger
}

func NewTokenService(config config.Config, sessions SessionStore) *TokenService {
	return &TokenService{
		secret:     []byte(config.JWTSecret),
		accessTTL:  config.AccessTokenTTL(),
		refreshTTL: config.RefreshTokenTTL(),
		sessions:   sessions,
		now:        time.Now,
		log:        logger.New("tokenService"),
	}
}

func (s *TokenService) Issue(ctx context.Context, user *models.User) (TokenPair, error) {
	log := s.log.TraceFromContext(ctx).Function("Issue")

	session := Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: s.now().UTC(),
	}

	access, err := s.sign(user.ID, session.ID, AccessToken, s.accessTTL)
	if err != nil {
		return TokenPair{}, log.Err("failed to sign access token", err, "userID", user.ID)
	}

	refresh, err := s.sign(user.ID, session.ID, RefreshToken, s.refreshTTL)
	if err != nil {
		return TokenPair{}, log.Err("failed to sign refresh token", err, "userID", user.ID)
	}

	if err := s.sessions.Create(ctx, session, s.refreshTTL); err != nil {
		return TokenPair{}, log.Err("failed to create session", err, "userID", user.ID)
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Authenticate accepts only live access tokens
func (s *TokenService) Authenticate(ctx context.Context, token string) (*TokenClaims, error) {
	return s.validate(ctx, token, AccessToken)
}

// ValidateRefresh accepts only live refresh tokens
func (s *TokenService) ValidateRefresh(ctx context.Context, token string) (*TokenClaims, error) {
	return s.validate(ctx, token, RefreshToken)
}

// Verify accepts either token type as long as it is live
func (s *TokenService) Verify(ctx context.Context, token string) (*TokenClaims, error) {
	return s.validate(ctx, token, "")
}

func (s *TokenService) Revoke(ctx context.Context, sessionID string) error {
	log := s.log.TraceFromContext(ctx).Function("Revoke")

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return log.Err("failed to revoke session", err)
	}
	return nil
}

func (s *TokenService) sign(
	userID int,
	sessionID string,
	tokenType TokenType,
	ttl time.Duration,
) (string, error) {
	now := s.now()
	claims := TokenClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    tokenIssuer,
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) validate(
	ctx context.Context,
	token string,
	expected TokenType,
) (*TokenClaims, error) {
	log := s.log.TraceFromContext(ctx).Function("validate")

	if token == "" {
		return nil, log.ErrorWithType(apperrors.ErrUnauthorized, "Token required")
	}

	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		message := "Token is invalid"
		if errors.Is(err, jwt.ErrTokenExpired) {
			message = "Token is expired"
		}
		return nil, log.ErrorWithType(apperrors.ErrUnauthorized, message, "reason", err.Error())
	}

	if expected != "" && claims.TokenType != expected {
		return nil, log.ErrorWithType(apperrors.ErrUnauthorized, "Token has wrong type", "tokenType", claims.TokenType)
	}

	session, err := s.sessions.Get(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, log.ErrorWithType(apperrors.ErrUnauthorized, "Session has ended", "userID", claims.UserID)
		}
		return nil, log.Err("failed to look up session", err, "userID", claims.UserID)
	}

	if session.UserID != claims.UserID {
		return nil, log.ErrorWithType(apperrors.ErrUnauthorized, "Token is invalid", "userID", claims.UserID)
	}

	return claims, nil
}
