package handlers

import (
	"net/http"

	"blogapi/internal/auth"
	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
	"blogapi/internal/http/middleware"
	"blogapi/internal/repositories"
	"blogapi/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	Users repositories.UserRepository
	Codec *auth.Codec
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status string      `json:"status"`
	Token  string      `json:"token"`
	User   models.User `json:"user"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var errs []string
	if trimmed(req.Email) == "" {
		errs = append(errs, "email is required")
	}
	if req.Password == "" {
		errs = append(errs, "password is required")
	}
	if len(errs) > 0 {
		RespondDomainError(c, domain.ValidationError{Errors: errs})
		return
	}

	user, hash, err := h.Users.FindCredentialsByEmail(c.Request.Context(), trimmed(req.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, domain.NotAuthorizedError{Msg: "Email or password is incorrect"})
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondDomainError(c, domain.NotAuthorizedError{Msg: "Email or password is incorrect"})
		return
	}
	if !user.IsActive {
		RespondDomainError(c, domain.NotAuthorizedError{Msg: "Email or password is incorrect"})
		return
	}

	token, err := h.Codec.Issue(auth.Claims{
		Email:    user.Email,
		Role:     user.Role,
		IsActive: user.IsActive,
		UUID:     user.UUID,
	})
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	c.JSON(http.StatusOK, loginResponse{Status: "success", Token: token, User: user})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var errs []string
	if trimmed(req.Name) == "" {
		errs = append(errs, "name is required")
	}
	if trimmed(req.Email) == "" {
		errs = append(errs, "email is required")
	}
	if len(req.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if len(errs) > 0 {
		RespondDomainError(c, domain.ValidationError{Errors: errs})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	user, err := h.Users.Create(c.Request.Context(), models.User{
		UUID:     uuid.NewString(),
		Name:     trimmed(req.Name),
		Email:    trimmed(req.Email),
		Role:     string(domain.RoleUser),
		IsActive: true,
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "uuid="+user.UUID)
	respondData(c, http.StatusCreated, user)
}
