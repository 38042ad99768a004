package handlers

import (
	"net/http"

	"blogapi/internal/domain"

	"github.com/gin-gonic/gin"
)

// ErrorEnvelope is the fixed top-level shape for every error response.
type ErrorEnvelope struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// DataEnvelope wraps single-entity success payloads.
type DataEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

var devMode bool

// SetDevMode controls whether internal error details are echoed to
// clients. Only the router flips this, at startup.
func SetDevMode(on bool) { devMode = on }

func respondError(c *gin.Context, status int, kind, message string, errs []string) {
	if errs == nil {
		errs = []string{}
	}
	c.JSON(status, ErrorEnvelope{Status: kind, Message: message, Errors: errs})
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, DataEnvelope{Status: "success", Data: data})
}

// RespondDomainError maps error kinds to transport responses. Every
// rejection reaches this boundary with its kind intact; nothing is
// swallowed along the way.
func RespondDomainError(c *gin.Context, err error) {
	switch e := err.(type) {
	case domain.ValidationError:
		respondError(c, http.StatusBadRequest, "ValidationError", domain.MsgInvalidInput, e.Errors)
	case domain.NotAuthorizedError:
		respondError(c, http.StatusUnauthorized, "EntityNotAuthorized", e.Error(), nil)
	case domain.ForbiddenError:
		respondError(c, http.StatusForbidden, "EntityForbiddenAction", domain.MsgForbidden, nil)
	case domain.NotFoundError:
		respondError(c, http.StatusNotFound, "EntityNotFound", e.Error(), nil)
	case domain.AlreadyExistsError:
		respondError(c, http.StatusConflict, "EntityAlreadyExists", domain.MsgDuplicateEntry, nil)
	default:
		message := "Something went wrong."
		if devMode {
			message = err.Error()
		}
		respondError(c, http.StatusInternalServerError, "InternalServerError", message, nil)
	}
}

// BindJSONOrError ensures the body is present and parsable; a bad body
// is reported as a validation error.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondDomainError(c, domain.ValidationError{Errors: []string{"request body is required"}})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondDomainError(c, domain.ValidationError{Errors: []string{"request body is not valid JSON"}})
		return false
	}
	return true
}

// pathID parses a positive integer :id path parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := parsePositiveInt64(c.Param("id"))
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Errors: []string{"id must be a positive integer"}})
		return 0, false
	}
	return id, true
}
