package handlers

import (
	"net/http"

	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
	"blogapi/internal/http/middleware"
	"blogapi/internal/pagination"
	"blogapi/internal/repositories"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves comments nested under posts.
type CommentHandler struct {
	Comments repositories.CommentRepository
	Posts    repositories.PostRepository
	Users    repositories.UserRepository
}

// GET /api/posts/:id/comments
func (h CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	req, err := pagination.Normalize(c.Request.URL.Query(), domain.CommentStatuses)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if _, err := h.Posts.FindByID(c.Request.Context(), postID); err != nil {
		RespondDomainError(c, err)
		return
	}

	skip, take := req.Window()
	comments, total, err := h.Comments.ListByPost(c.Request.Context(), postID, req.Statuses, skip, take, req.Paginated)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if req.Paginated {
		c.JSON(http.StatusOK, pagination.Paged(comments, req, total))
		return
	}
	c.JSON(http.StatusOK, pagination.FlatList(comments))
}

type commentPayload struct {
	Content string `json:"content"`
	Status  string `json:"status"`
}

// POST /api/posts/:id/comments
func (h CommentHandler) Create(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondDomainError(c, domain.NotAuthorizedError{Msg: domain.MsgNoToken})
		return
	}
	postID, ok := pathID(c)
	if !ok {
		return
	}

	var req commentPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if trimmed(req.Content) == "" {
		RespondDomainError(c, domain.ValidationError{Errors: []string{"content is required"}})
		return
	}

	if _, err := h.Posts.FindByID(c.Request.Context(), postID); err != nil {
		RespondDomainError(c, err)
		return
	}
	author, err := h.Users.FindByUUID(c.Request.Context(), identity.UUID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	comment, err := h.Comments.Create(c.Request.Context(), models.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		Content:  trimmed(req.Content),
		Status:   domain.CommentActive,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, comment)
}

// PUT /api/comments/:id
func (h CommentHandler) Update(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondDomainError(c, domain.NotAuthorizedError{Msg: domain.MsgNoToken})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req commentPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	existing, err := h.Comments.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// only the comment's author or an admin may edit it
	if domain.Role(identity.Role) != domain.RoleAdmin {
		author, err := h.Users.FindByUUID(c.Request.Context(), identity.UUID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if existing.AuthorID != author.ID {
			RespondDomainError(c, domain.ForbiddenError{})
			return
		}
	}

	content := existing.Content
	if trimmed(req.Content) != "" {
		content = trimmed(req.Content)
	}
	status := existing.Status
	if req.Status != "" {
		if !validStatus(req.Status, domain.CommentStatuses) {
			RespondDomainError(c, domain.ValidationError{Errors: []string{"status must be one of ACTIVE, INACTIVE, FLAGGED"}})
			return
		}
		// moderation state changes are an admin action
		if domain.Role(identity.Role) != domain.RoleAdmin {
			RespondDomainError(c, domain.ForbiddenError{})
			return
		}
		status = req.Status
	}

	comment, err := h.Comments.Update(c.Request.Context(), id, content, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, comment)
}

// DELETE /api/comments/:id
func (h CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Comments.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": id})
}
