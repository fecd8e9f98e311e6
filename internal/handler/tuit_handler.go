package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tuiter/internal/dto"
	"tuiter/internal/service"
	"tuiter/pkg/apperror"
	"tuiter/pkg/response"
	"tuiter/pkg/validator"
)

type TuitHandler struct {
	tuitService service.TuitService
}

func NewTuitHandler(tuitService service.TuitService) *TuitHandler {
	return &TuitHandler{
		tuitService: tuitService,
	}
}

// imageFromForm pulls an optional "image" file out of a multipart request.
func imageFromForm(c *gin.Context) (*dto.ImageFile, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file attached is fine
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}

	return &dto.ImageFile{Reader: file, FileName: fileHeader.Filename}, nil
}

func (h *TuitHandler) CreateTuit(c *gin.Context) {
	authorID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateTuitRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	image, err := imageFromForm(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	tuit, err := h.tuitService.Create(c.Request.Context(), authorID, input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tuit)
}

func (h *TuitHandler) GetAllTuits(c *gin.Context) {
	tuits, err := h.tuitService.FindAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, tuits)
}

func (h *TuitHandler) GetTuit(c *gin.Context) {
	tuitID, err := uuid.Parse(c.Param("tid"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	tuit, err := h.tuitService.FindByID(c.Request.Context(), tuitID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, tuit)
}

func (h *TuitHandler) GetTuitsByUser(c *gin.Context) {
	userID, err := response.ResolveUserID(c, c.Param("uid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	tuits, err := h.tuitService.FindByUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, tuits)
}

func (h *TuitHandler) UpdateTuit(c *gin.Context) {
	tuitID, err := uuid.Parse(c.Param("tid"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	var patch dto.UpdateTuitRequest
	if err := c.ShouldBind(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	image, err := imageFromForm(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	tuit, err := h.tuitService.Update(c.Request.Context(), tuitID, patch, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, tuit)
}

func (h *TuitHandler) DeleteTuit(c *gin.Context) {
	tuitID, err := uuid.Parse(c.Param("tid"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	affected, err := h.tuitService.Delete(c.Request.Context(), tuitID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": affected})
}
