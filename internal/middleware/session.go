package middleware

import (
	"time"

	"quiz-exam/internal/logger"
	"quiz-exam/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionIDKey is the fiber.Ctx locals key holding the quiz session ID.
const SessionIDKey = "sessionID"

// SessionCookie binds a quiz session to the client through a signed cookie.
type SessionCookie struct {
	tokens service.SessionTokenService
	name   string
	ttl    time.Duration
	secure bool
}

// NewSessionCookie creates the cookie binding. ttl bounds the cookie lifetime.
func NewSessionCookie(tokens service.SessionTokenService, name string, ttl time.Duration, secure bool) *SessionCookie {
	return &SessionCookie{tokens: tokens, name: name, ttl: ttl, secure: secure}
}

// Middleware resolves the session ID from the cookie, if any. Requests
// without a valid cookie continue without a session; handlers decide how to
// answer that.
func (s *SessionCookie) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(s.name)
		if token == "" {
			return c.Next()
		}

		sessionID, err := s.tokens.Parse(token)
		if err != nil {
			logger.Get().Debug("Ignoring invalid session cookie", zap.Error(err), zap.String("ip", c.IP()))
			s.Clear(c)
			return c.Next()
		}

		c.Locals(SessionIDKey, sessionID)
		return c.Next()
	}
}

// Issue signs sessionID into the cookie of the response.
func (s *SessionCookie) Issue(c *fiber.Ctx, sessionID string) error {
	token, err := s.tokens.Issue(sessionID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.ttl),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(SessionIDKey, sessionID)
	return nil
}

// Clear expires the cookie.
func (s *SessionCookie) Clear(c *fiber.Ctx) {
	c.ClearCookie(s.name)
	c.Locals(SessionIDKey, "")
}

// SessionID returns the session resolved for this request or "".
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionIDKey).(string)
	return id
}
