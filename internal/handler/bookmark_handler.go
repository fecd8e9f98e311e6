package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tuiter/internal/service"
	"tuiter/pkg/apperror"
	"tuiter/pkg/response"
)

type BookmarkHandler struct {
	bookmarkService service.BookmarkService
}

func NewBookmarkHandler(bookmarkService service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
	}
}

func (h *BookmarkHandler) pairFromPath(c *gin.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	tuitID, err := uuid.Parse(c.Param("tid"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.ErrBadRequest
	}

	return userID, tuitID, nil
}

func (h *BookmarkHandler) Bookmark(c *gin.Context) {
	userID, tuitID, err := h.pairFromPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.bookmarkService.Bookmark(c.Request.Context(), userID, tuitID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "bookmarked"})
}

func (h *BookmarkHandler) Unbookmark(c *gin.Context) {
	userID, tuitID, err := h.pairFromPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	affected, err := h.bookmarkService.Unbookmark(c.Request.Context(), userID, tuitID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": affected})
}

func (h *BookmarkHandler) GetBookmarks(c *gin.Context) {
	userID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	tuits, err := h.bookmarkService.List(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, tuits)
}
