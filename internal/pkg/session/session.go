package session

import (
	"errors"
	"time"

	"pdf-summarizer-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CookieName = "pdf_summarizer_session"
	LocalsKey  = "session_id"
)

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager hands every browser an anonymous id, kept in a signed cookie.
type Manager struct {
	secret   []byte
	lifetime time.Duration
	secure   bool
	logger   logger.ILogger
	now      func() time.Time
}

func NewManager(secret string, lifetime time.Duration, secure bool, log logger.ILogger) *Manager {
	return &Manager{
		secret:   []byte(secret),
		lifetime: lifetime,
		secure:   secure,
		logger:   log,
		now:      time.Now,
	}
}

// GetOrCreate returns the id carried by the request cookie, or mints a new one and sets
// the cookie when it is missing, expired or tampered with.
func (m *Manager) GetOrCreate(c *fiber.Ctx) string {
	if sid, err := m.Parse(c.Cookies(CookieName)); err == nil {
		return sid
	}

	sid := uuid.NewString()
	token, err := m.Sign(sid)
	if err != nil {
		m.logger.Error("SESSION", "Failed to sign session cookie", map[string]interface{}{"error": err.Error()})
		return sid
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  m.now().Add(m.lifetime),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	m.logger.Info("SESSION", "New session created: "+logger.Truncate(sid, 8), nil)
	return sid
}

// Middleware resolves the session once and exposes it as c.Locals("session_id").
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalsKey, m.GetOrCreate(c))
		return c.Next()
	}
}

func (m *Manager) Sign(sid string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
	})
	return token.SignedString(m.secret)
}

func (m *Manager) Parse(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("no session cookie")
	}

	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", err
	}
	if !token.Valid || c.SessionID == "" {
		return "", errors.New("invalid session cookie")
	}
	return c.SessionID, nil
}

// FromContext reads the id stored by Middleware.
func FromContext(c *fiber.Ctx) string {
	sid, _ := c.Locals(LocalsKey).(string)
	return sid
}
