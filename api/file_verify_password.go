package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type verifyPasswordBody struct {
	Password string `json:"password"`
}

// FileVerifyPassword is the legacy check used by old clients before
// requesting a private download. Public files verify unconditionally.
func (a *API) FileVerifyPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	file, ok := a.lookupFile(c)
	if !ok {
		return
	}

	var data verifyPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if file.Private {
		if data.Password == "" || data.Password != file.Password {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid password",
				"requestID": requestID,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password verified",
	})
}
