package api

import (
	"errors"
	"fmt"
	"net/http"

	"pioo/tugas-api/model"
	"pioo/tugas-api/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileView streams a file inline so browsers can preview it.
func (a *API) FileView(c *gin.Context) {
	a.fileStream(c, "inline")
}

// FileDownload streams a file as an attachment. Legacy private files
// require the matching password as a query parameter.
func (a *API) FileDownload(c *gin.Context) {
	a.fileStream(c, "attachment")
}

func (a *API) fileStream(c *gin.Context, disposition string) {
	requestID := c.MustGet("requestID").(string)

	file, ok := a.lookupFile(c)
	if !ok {
		return
	}

	if disposition == "attachment" && file.Private {
		if pw := c.Query("password"); pw == "" || pw != file.Password {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Password required for private file",
				"requestID": requestID,
			})
			return
		}
	}

	rc, err := a.Store.Open(c.Request.Context(), file.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Metadata without a payload, the upload failed half way
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Error downloading file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open payload", zap.Error(err), zap.String("id", file.ID), zap.String("requestID", requestID))
		return
	}
	defer rc.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, file.Size, contentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("%s; filename=%q", disposition, file.Filename),
	})
}

// lookupFile resolves the :id route parameter to a metadata row and
// writes the error response itself when that fails.
func (a *API) lookupFile(c *gin.Context) (model.File, bool) {
	requestID := c.MustGet("requestID").(string)

	fileID := c.Param("id")
	if fileID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file ID provided",
			"requestID": requestID,
		})
		return model.File{}, false
	}

	var file model.File

	err := a.DB.
		Where("id = ?", fileID).
		First(&file).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return model.File{}, false
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file from db", zap.Error(err), zap.String("requestID", requestID))
		return model.File{}, false
	}

	return file, true
}
