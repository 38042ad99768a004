package auth

import (
	"time"

	"blogapi/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity snapshot embedded in every issued token.
// Identifier fields ride as strings so bignum ids never lose precision
// in JSON number round-trips.
type Claims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
	UUID     string `json:"uuid"`
	jwt.RegisteredClaims
}

// Config is the process-wide token configuration, read-only after startup.
type Config struct {
	Secret []byte
	TTL    time.Duration
}

// Codec signs and verifies bearer tokens. It is a pure function of
// (token, secret, clock) and never consults a store.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(cfg Config) *Codec {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: cfg.Secret, ttl: ttl, now: time.Now}
}

// WithClock overrides the codec clock. Tests use it to fast-forward expiry.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue signs the claims with an expiry derived from the configured TTL.
func (c *Codec) Issue(cl Claims) (string, error) {
	issued := c.now()
	cl.IssuedAt = jwt.NewNumericDate(issued)
	cl.ExpiresAt = jwt.NewNumericDate(issued.Add(c.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	return token.SignedString(c.secret)
}

// Parse verifies signature and expiry. Every failure mode, bad
// signature, garbage input, or a past expiry, collapses to the same
// unauthorized outcome.
func (c *Codec) Parse(tokenString string) (Claims, error) {
	var cl Claims
	token, err := jwt.ParseWithClaims(tokenString, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !token.Valid {
		return Claims{}, domain.NotAuthorizedError{Msg: domain.MsgBadToken}
	}
	return cl, nil
}
