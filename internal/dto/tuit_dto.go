package dto

import "io"

// ImageFile carries an uploaded attachment from the handler to the service.
type ImageFile struct {
	Reader   io.Reader
	FileName string
}

type CreateTuitRequest struct {
	Tuit    string  `json:"tuit" form:"tuit" binding:"required,max=280"`
	Youtube *string `json:"youtube" form:"youtube"`
}

// UpdateTuitRequest is a partial patch; only non-nil fields are applied.
type UpdateTuitRequest struct {
	Tuit    *string `json:"tuit" form:"tuit" binding:"omitempty,max=280"`
	Youtube *string `json:"youtube" form:"youtube"`
}

type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}
