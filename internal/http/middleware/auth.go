package middleware

import (
	"net/http"

	"blogapi/internal/auth"
	"blogapi/internal/domain"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Authenticate verifies the bearer token and re-checks the user record
// before letting the request proceed. All rejection reasons map to 401;
// only the message varies between a missing and an invalid token.
func Authenticate(a auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		outcome, err := a.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			abortError(c, http.StatusInternalServerError, "InternalServerError", "Something went wrong.")
			return
		}
		if !outcome.Verified() {
			abortError(c, http.StatusUnauthorized, "EntityNotAuthorized", rejectionMessage(outcome.Reason()))
			return
		}
		c.Set(identityKey, outcome.Claims())
		c.Next()
	}
}

// AuthenticateOptional lets anonymous requests through untouched but
// still rejects a presented token that fails verification.
func AuthenticateOptional(a auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		Authenticate(a)(c)
	}
}

// Identity returns the verified claims attached by Authenticate.
func Identity(c *gin.Context) (auth.Claims, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Claims{}, false
	}
	cl, ok := v.(auth.Claims)
	return cl, ok
}

func rejectionMessage(reason auth.Reason) string {
	if reason == auth.ReasonMissingToken {
		return domain.MsgNoToken
	}
	return domain.MsgBadToken
}

func abortError(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":  kind,
		"message": message,
		"errors":  []string{},
	})
}
