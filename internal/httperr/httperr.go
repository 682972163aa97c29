package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError escreve a resposta correspondente ao tipo do erro. Erros que não
// são de negócio viram 500 sem expor detalhes internos.
func FromError(c *gin.Context, err error) {
	_ = c.Error(err)

	be, ok := As(err)
	if !ok {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	if be.Kind == KindPersistence {
		Internal(c, be.Code, be.Message)
		return
	}

	c.JSON(be.Kind.Status(), HTTPError{
		Code:    be.Code,
		Message: be.Message,
		Details: be.Payload,
	})
}
