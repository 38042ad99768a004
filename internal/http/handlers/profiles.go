package handlers

import (
	"net/http"

	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
	"blogapi/internal/http/middleware"
	"blogapi/internal/repositories"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	Profiles repositories.ProfileRepository
	Users    repositories.UserRepository
}

func (h ProfileHandler) currentUser(c *gin.Context) (models.User, bool) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondDomainError(c, domain.NotAuthorizedError{Msg: domain.MsgNoToken})
		return models.User{}, false
	}
	user, err := h.Users.FindByUUID(c.Request.Context(), identity.UUID)
	if err != nil {
		RespondDomainError(c, err)
		return models.User{}, false
	}
	return user, true
}

// GET /api/profiles/me
func (h ProfileHandler) Me(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	profile, err := h.Profiles.FindByUserID(c.Request.Context(), user.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			// an account without a saved profile still has one, just empty
			respondData(c, http.StatusOK, models.Profile{UserID: user.ID})
			return
		}
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

type profilePayload struct {
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
	Website   string `json:"website"`
	Location  string `json:"location"`
}

// PUT /api/profiles/me
func (h ProfileHandler) UpdateMe(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req profilePayload
	if !BindJSONOrError(c, &req) {
		return
	}

	profile, err := h.Profiles.Upsert(c.Request.Context(), models.Profile{
		UserID:    user.ID,
		Bio:       trimmed(req.Bio),
		AvatarURL: trimmed(req.AvatarURL),
		Website:   trimmed(req.Website),
		Location:  trimmed(req.Location),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}
