package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tuiter/internal/search"
	"tuiter/pkg/response"
)

type SearchHandler struct {
	searchService search.SearchService
}

func NewSearchHandler(searchService search.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	results, err := h.searchService.Search(query, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
