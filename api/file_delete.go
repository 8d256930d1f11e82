package api

import (
	"errors"
	"net/http"

	"pioo/tugas-api/model"
	"pioo/tugas-api/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileDelete removes a file's payload and metadata together. There is
// no ownership check, any caller may delete any object by id.
func (a *API) FileDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	file, ok := a.lookupFile(c)
	if !ok {
		return
	}

	err := a.Store.Delete(c.Request.Context(), file.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete payload", zap.Error(err), zap.String("id", file.ID), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Delete(&model.File{}, "id = ?", file.ID).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file record", zap.Error(err), zap.String("id", file.ID), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted successfully",
	})
}
