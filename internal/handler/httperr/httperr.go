// Package httperr defines the error envelope every endpoint answers with:
//
//	{"error": {"message": "..."}, "detail": {...}}
package httperr

import (
	"net/http"

	"coupon-service/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const internalMessage = "Internal server error"

type Body struct {
	Message string `json:"message"`
}

type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

func NewResponse(status int, msg string, detail any) Response {
	return Response{Status: status, Error: Body{Message: msg}, Detail: detail}
}

// Internal is the body for any failure whose cause must stay server side.
func Internal() Response {
	return NewResponse(http.StatusInternalServerError, internalMessage, nil)
}

// AbortWithError writes the envelope and attaches err to the context so
// ErrorHandler can log it. A nil err is replaced by msg.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := NewResponse(status, msg, detail)
	_ = c.Error(&gin.Error{Err: err, Type: gin.ErrorTypePublic, Meta: resp})
	c.AbortWithStatusJSON(status, resp)
}
