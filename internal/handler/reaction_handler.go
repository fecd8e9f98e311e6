package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tuiter/internal/service"
	"tuiter/pkg/apperror"
	"tuiter/pkg/response"
)

type ReactionHandler struct {
	reactionService service.ReactionService
}

func NewReactionHandler(reactionService service.ReactionService) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
	}
}

func (h *ReactionHandler) pairFromPath(c *gin.Context) (uuid.UUID, uuid.UUID, error) {
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

func (h *ReactionHandler) ToggleLike(c *gin.Context) {
	userID, tuitID, err := h.pairFromPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	outcome, err := h.reactionService.ToggleLike(c.Request.Context(), userID, tuitID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (h *ReactionHandler) ToggleDislike(c *gin.Context) {
	userID, tuitID, err := h.pairFromPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	outcome, err := h.reactionService.ToggleDislike(c.Request.Context(), userID, tuitID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (h *ReactionHandler) GetUsersWhoLiked(c *gin.Context) {
	tuitID, err := uuid.Parse(c.Param("tid"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	users, err := h.reactionService.UsersWhoLiked(c.Request.Context(), tuitID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *ReactionHandler) GetUsersWhoDisliked(c *gin.Context) {
	tuitID, err := uuid.Parse(c.Param("tid"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	users, err := h.reactionService.UsersWhoDisliked(c.Request.Context(), tuitID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *ReactionHandler) GetTuitsLikedByUser(c *gin.Context) {
	userID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	tuits, err := h.reactionService.TuitsLikedBy(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, tuits)
}

func (h *ReactionHandler) GetTuitsDislikedByUser(c *gin.Context) {
	userID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	tuits, err := h.reactionService.TuitsDislikedBy(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, tuits)
}

func (h *ReactionHandler) CountLikes(c *gin.Context) {
	tuitID, err := uuid.Parse(c.Param("tid"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	count, err := h.reactionService.CountLikes(c.Request.Context(), tuitID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *ReactionHandler) CountDislikes(c *gin.Context) {
	tuitID, err := uuid.Parse(c.Param("tid"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	count, err := h.reactionService.CountDislikes(c.Request.Context(), tuitID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
