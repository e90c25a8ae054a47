package i18n

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes {success:false, message} with the error's status.
// Errors without a code become a 500 with a generic message.
func RespondWithError(c *gin.Context, err error) {
	code := http.StatusInternalServerError

	var errWithCode *ErrorWithCode
	if errors.As(err, &errWithCode) {
		code = int(errWithCode.GetCode())
	}

	c.AbortWithStatusJSON(code, gin.H{
		"success": false,
		"message": TranslateError(c, err),
	})
}

// RespondWithSuccess writes {success:true, ...payload}. A non-empty msgID is
// translated into the message field.
func RespondWithSuccess(c *gin.Context, code int, msgID string, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	if msgID != "" {
		body["message"] = TranslateMessage(c, msgID, nil)
	}
	c.JSON(code, body)
}
