package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"asd-screen/internal/domain"
)

var (
	ErrSessionInvalid = errors.New("session invalid")
	ErrSessionExpired = errors.New("session expired")
	ErrSessionRevoked = errors.New("session revoked")
)

// SessionClaims identifica una sesion autenticada. El SessionID (jti) es la
// clave del WizardStateStore.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionID devuelve el identificador de la sesion.
func (c SessionClaims) SessionID() string {
	return c.ID
}

// SessionService emite y valida el token firmado que viaja en la cookie.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	store  SessionStore
	now    func() time.Time
}

// NewSessionService usa un SessionStore en memoria.
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return NewSessionServiceWithStore(secret, ttl, nil)
}

func NewSessionServiceWithStore(secret string, ttl time.Duration, store SessionStore) *SessionService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if store == nil {
		store = NewMemorySessionStore()
	}
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "asd-screen",
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// TTL devuelve la vida de una sesion nueva.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue abre una sesion nueva para el usuario; cada login obtiene un SessionID propio.
func (s *SessionService) Issue(user domain.User) (string, SessionClaims, error) {
	if len(s.secret) == 0 {
		return "", SessionClaims{}, ErrSessionInvalid
	}
	now := s.now()
	claims := SessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", SessionClaims{}, err
	}
	if err := s.store.Store(claims.ID, user.ID, s.ttl); err != nil {
		return "", SessionClaims{}, err
	}
	return signed, claims, nil
}

// Parse valida firma, emisor y vencimiento del token de sesion, y que la
// sesion no haya sido revocada. Un error del store no es ErrSessionInvalid.
func (s *SessionService) Parse(token string) (SessionClaims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(token) == "" {
		return SessionClaims{}, ErrSessionInvalid
	}
	var claims SessionClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrSessionExpired
		}
		return SessionClaims{}, ErrSessionInvalid
	}
	if strings.TrimSpace(claims.ID) == "" || strings.TrimSpace(claims.Username) == "" {
		return SessionClaims{}, ErrSessionInvalid
	}
	ok, err := s.store.Exists(claims.ID)
	if err != nil {
		return SessionClaims{}, fmt.Errorf("session store: %w", err)
	}
	if !ok {
		return SessionClaims{}, ErrSessionRevoked
	}
	return claims, nil
}

// Revoke cierra la sesion; el token deja de valer aunque no haya vencido.
func (s *SessionService) Revoke(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return s.store.Revoke(sessionID)
}
