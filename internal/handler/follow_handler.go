package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tuiter/internal/service"
	"tuiter/pkg/apperror"
	"tuiter/pkg/response"
)

type FollowHandler struct {
	followService service.FollowService
}

func NewFollowHandler(followService service.FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
	}
}

func (h *FollowHandler) edgeFromPath(c *gin.Context) (uuid.UUID, uuid.UUID, error) {
	followerID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	followeeID, err := uuid.Parse(c.Param("ouid"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.ErrBadRequest
	}

	return followerID, followeeID, nil
}

func (h *FollowHandler) Follow(c *gin.Context) {
	followerID, followeeID, err := h.edgeFromPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.followService.Follow(c.Request.Context(), followerID, followeeID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "following"})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	followerID, followeeID, err := h.edgeFromPath(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	affected, err := h.followService.Unfollow(c.Request.Context(), followerID, followeeID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": affected})
}

func (h *FollowHandler) GetFollowing(c *gin.Context) {
	userID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	users, err := h.followService.Following(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *FollowHandler) GetFollowers(c *gin.Context) {
	userID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	users, err := h.followService.Followers(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
