package handlers

import (
	"net/http"

	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
	"blogapi/internal/http/middleware"
	"blogapi/internal/pagination"
	"blogapi/internal/repositories"
	"blogapi/internal/services"

	"github.com/gin-gonic/gin"
)

// PostHandler serves the post CRUD and PDF export.
type PostHandler struct {
	Posts repositories.PostRepository
	Users repositories.UserRepository
	Docs  services.DocsService
}

// canSeeUnpublished reports whether the caller may read or filter
// beyond PUBLISHED posts.
func canSeeUnpublished(c *gin.Context) bool {
	identity, ok := middleware.Identity(c)
	if !ok {
		return false
	}
	role := domain.Role(identity.Role)
	return role == domain.RoleAdmin || role == domain.RoleEditor
}

// GET /api/posts
func (h PostHandler) List(c *gin.Context) {
	req, err := pagination.Normalize(c.Request.URL.Query(), domain.PostStatuses)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if !canSeeUnpublished(c) {
		req.Statuses = []string{domain.PostPublished}
	}

	skip, take := req.Window()
	posts, total, err := h.Posts.List(c.Request.Context(), req.Statuses, skip, take, req.Paginated)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if req.Paginated {
		c.JSON(http.StatusOK, pagination.Paged(posts, req, total))
		return
	}
	c.JSON(http.StatusOK, pagination.FlatList(posts))
}

// GET /api/posts/:id
func (h PostHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	post, err := h.Posts.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	// unpublished posts are invisible to outsiders, not forbidden
	if post.Status != domain.PostPublished && !canSeeUnpublished(c) {
		RespondDomainError(c, domain.NotFoundError{Entity: "Post", Key: id})
		return
	}
	respondData(c, http.StatusOK, post)
}

type postPayload struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Status      string  `json:"status"`
	CategoryIDs []int64 `json:"categoryIds"`
}

func (p postPayload) validate() []string {
	var errs []string
	if trimmed(p.Title) == "" {
		errs = append(errs, "title is required")
	}
	if trimmed(p.Content) == "" {
		errs = append(errs, "content is required")
	}
	if p.Status != "" && !validStatus(p.Status, domain.PostStatuses) {
		errs = append(errs, "status must be one of DRAFT, PUBLISHED, ARCHIVED")
	}
	return errs
}

// POST /api/posts
func (h PostHandler) Create(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondDomainError(c, domain.NotAuthorizedError{Msg: domain.MsgNoToken})
		return
	}

	var req postPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		RespondDomainError(c, domain.ValidationError{Errors: errs})
		return
	}

	author, err := h.Users.FindByUUID(c.Request.Context(), identity.UUID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	status := req.Status
	if status == "" {
		status = "DRAFT"
	}

	post, err := h.Posts.Create(c.Request.Context(), models.Post{
		Title:    trimmed(req.Title),
		Content:  req.Content,
		Status:   status,
		AuthorID: author.ID,
	}, req.CategoryIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, post)
}

// PUT /api/posts/:id
func (h PostHandler) Update(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondDomainError(c, domain.NotAuthorizedError{Msg: domain.MsgNoToken})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req postPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	existing, err := h.Posts.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	// editors may only touch their own posts; admins may touch any
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

	if trimmed(req.Title) != "" {
		existing.Title = trimmed(req.Title)
	}
	if trimmed(req.Content) != "" {
		existing.Content = req.Content
	}
	if req.Status != "" {
		if !validStatus(req.Status, domain.PostStatuses) {
			RespondDomainError(c, domain.ValidationError{Errors: []string{"status must be one of DRAFT, PUBLISHED, ARCHIVED"}})
			return
		}
		existing.Status = req.Status
	}

	post, err := h.Posts.Update(c.Request.Context(), existing, req.CategoryIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, post)
}

// DELETE /api/posts/:id
func (h PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Posts.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": id})
}

// GET /api/posts/:id/pdf
func (h PostHandler) ExportPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	docs := h.Docs
	docs.RequestID = middleware.GetRequestID(c)
	data, filename, err := docs.ExportPost(c.Request.Context(), id, canSeeUnpublished(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func validStatus(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
