package service

import (
	"errors"
	"fmt"
	"time"

	"quiz-exam/internal/dto"
	"quiz-exam/internal/logger"
	"quiz-exam/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const sessionTokenIssuer = "quiz-exam"

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionTokenService signs the session ID into the cookie value so clients
// cannot pick another session by guessing IDs.
type SessionTokenService interface {
	Issue(sessionID string) (string, error)
	// Parse returns the session ID carried by token.
	Parse(token string) (string, error)
}

type sessionTokenServiceImpl struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionTokenService creates a HS256 token service.
func NewSessionTokenService(secretKey string, ttl time.Duration) (SessionTokenService, error) {
	if len(secretKey) < 32 {
		return nil, errors.New("session secret key must be at least 32 bytes long")
	}
	return &sessionTokenServiceImpl{
		secret: []byte(secretKey),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *sessionTokenServiceImpl) Issue(sessionID string) (string, error) {
	if !util.IsULID(sessionID) {
		return "", fmt.Errorf("%w: malformed session id", ErrInvalidSessionToken)
	}
	now := s.now()
	claims := dto.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *sessionTokenServiceImpl) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(sessionTokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("Session token expired", zap.Error(err))
		} else {
			logger.Get().Warn("Session token validation failed", zap.Error(err))
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}

	claims, ok := token.Claims.(*dto.SessionClaims)
	if !ok || !token.Valid || !util.IsULID(claims.SessionID) {
		return "", ErrInvalidSessionToken
	}
	return claims.SessionID, nil
}
