package handlers

import (
	"net/http"

	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
	"blogapi/internal/http/middleware"
	"blogapi/internal/pagination"
	"blogapi/internal/repositories"
	"blogapi/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler serves the admin user CRUD plus self-deactivation.
type UserHandler struct {
	Users repositories.UserRepository
}

// GET /api/users
func (h UserHandler) List(c *gin.Context) {
	req, err := pagination.Normalize(c.Request.URL.Query(), nil)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	skip, take := req.Window()
	users, total, err := h.Users.List(c.Request.Context(), skip, take, req.Paginated)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if req.Paginated {
		c.JSON(http.StatusOK, pagination.Paged(users, req, total))
		return
	}
	c.JSON(http.StatusOK, pagination.FlatList(users))
}

// GET /api/users/:id
func (h UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

type userPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}

// POST /api/users
func (h UserHandler) Create(c *gin.Context) {
	var req userPayload
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
	role, roleOK := domain.ParseRole(req.Role)
	if req.Role == "" {
		role, roleOK = domain.RoleUser, true
	}
	if !roleOK {
		errs = append(errs, "role must be one of USER, EDITOR, ADMIN")
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

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user, err := h.Users.Create(c.Request.Context(), models.User{
		UUID:     uuid.NewString(),
		Name:     trimmed(req.Name),
		Email:    trimmed(req.Email),
		Role:     string(role),
		IsActive: active,
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, user)
}

// PUT /api/users/:id
func (h UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req userPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	existing, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var errs []string
	if trimmed(req.Name) != "" {
		existing.Name = trimmed(req.Name)
	}
	if trimmed(req.Email) != "" {
		existing.Email = trimmed(req.Email)
	}
	if req.Role != "" {
		role, ok := domain.ParseRole(req.Role)
		if !ok {
			errs = append(errs, "role must be one of USER, EDITOR, ADMIN")
		} else {
			existing.Role = string(role)
		}
	}
	if len(errs) > 0 {
		RespondDomainError(c, domain.ValidationError{Errors: errs})
		return
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	user, err := h.Users.Update(c.Request.Context(), existing)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

// DELETE /api/users/:id
func (h UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": id})
}

// DELETE /api/users/me deactivates the caller's own account. The
// authenticator re-checks the same flag on every request, so every
// outstanding token for the account stops working immediately.
func (h UserHandler) DeactivateMe(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondDomainError(c, domain.NotAuthorizedError{Msg: domain.MsgNoToken})
		return
	}
	if err := h.Users.DeactivateByUUID(c.Request.Context(), identity.UUID); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "users", "deactivate", "uuid="+identity.UUID)
	respondData(c, http.StatusOK, gin.H{"deactivated": true})
}
