package auth

import (
	"context"
	"strings"

	"blogapi/internal/domain"
)

// DirectoryUser is the slice of a user record the authenticator needs
// for its liveness re-check.
type DirectoryUser struct {
	UUID     string
	Email    string
	Role     domain.Role
	IsActive bool
}

// UserDirectory is the live lookup collaborator. Implementations return
// domain.NotFoundError when no matching user exists.
type UserDirectory interface {
	FindByUUID(ctx context.Context, uuid string) (DirectoryUser, error)
}

// Reason tags why a verification was rejected.
type Reason int

const (
	ReasonMissingToken Reason = iota + 1
	ReasonBadToken
	ReasonInactiveUser
)

// Outcome is the tagged result of a verification attempt: either
// Verified with claims, or Rejected with a reason. Outcomes are
// request-scoped and never cached across requests.
type Outcome struct {
	claims   Claims
	reason   Reason
	verified bool
}

func Verified(cl Claims) Outcome     { return Outcome{claims: cl, verified: true} }
func Rejected(reason Reason) Outcome { return Outcome{reason: reason} }

func (o Outcome) Verified() bool { return o.verified }
func (o Outcome) Claims() Claims { return o.claims }
func (o Outcome) Reason() Reason { return o.reason }

// Authenticator decides whether a presented token still grants access.
// A structurally valid, unexpired token is not sufficient: the user
// record is re-checked on every call, so deactivating or deleting an
// account immediately invalidates its outstanding tokens.
type Authenticator struct {
	Codec *Codec
	Users UserDirectory
}

// Authenticate walks the header through parse and the liveness re-check.
// The error return is reserved for unexpected directory failures; all
// auth decisions come back as an Outcome.
func (a Authenticator) Authenticate(ctx context.Context, authorization string) (Outcome, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		return Rejected(ReasonMissingToken), nil
	}

	claims, err := a.Codec.Parse(token)
	if err != nil {
		return Rejected(ReasonBadToken), nil
	}

	user, err := a.Users.FindByUUID(ctx, claims.UUID)
	if err != nil {
		if domain.IsNotFound(err) {
			return Rejected(ReasonInactiveUser), nil
		}
		return Outcome{}, err
	}
	if !user.IsActive {
		return Rejected(ReasonInactiveUser), nil
	}

	return Verified(claims), nil
}

func bearerToken(authorization string) (string, bool) {
	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
