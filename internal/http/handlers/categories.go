package handlers

import (
	"net/http"

	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
	"blogapi/internal/pagination"
	"blogapi/internal/repositories"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves the category CRUD.
type CategoryHandler struct {
	Categories repositories.CategoryRepository
}

// GET /api/categories
func (h CategoryHandler) List(c *gin.Context) {
	req, err := pagination.Normalize(c.Request.URL.Query(), nil)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	skip, take := req.Window()
	cats, total, err := h.Categories.List(c.Request.Context(), skip, take, req.Paginated)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if req.Paginated {
		c.JSON(http.StatusOK, pagination.Paged(cats, req, total))
		return
	}
	c.JSON(http.StatusOK, pagination.FlatList(cats))
}

// GET /api/categories/:id
func (h CategoryHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := h.Categories.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, cat)
}

type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// POST /api/categories
func (h CategoryHandler) Create(c *gin.Context) {
	var req categoryPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if trimmed(req.Name) == "" {
		RespondDomainError(c, domain.ValidationError{Errors: []string{"name is required"}})
		return
	}

	cat, err := h.Categories.Create(c.Request.Context(), models.Category{
		Name:        trimmed(req.Name),
		Description: trimmed(req.Description),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, cat)
}

// PUT /api/categories/:id
func (h CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req categoryPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	existing, err := h.Categories.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if trimmed(req.Name) != "" {
		existing.Name = trimmed(req.Name)
	}
	if trimmed(req.Description) != "" {
		existing.Description = trimmed(req.Description)
	}

	cat, err := h.Categories.Update(c.Request.Context(), existing)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, cat)
}

// DELETE /api/categories/:id
func (h CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Categories.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": id})
}
