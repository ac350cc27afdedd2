package handlers

import (
	"errors"

	"assetdesk/internal/core/domain"
	"assetdesk/internal/core/services"
	"assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SearchHandler handles the global search endpoint
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search runs the cross-entity lookup
// @Summary Global search
// @Description Search assets, users and locations by a single query
// @Tags Search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")

	results, err := h.searchService.Search(c.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Search query is required")
		}
		return response.InternalServerError(c, "Search failed")
	}

	return response.Success(c, "Search completed", results)
}
