package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pioo/tugas-api/model"
	"pioo/tugas-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

func (a *API) FileUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to parse multipart form", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file uploaded",
			"requestID": requestID,
		})
		return
	}

	fh := files[0]

	code, f, contentType, err := validators.FileValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err), zap.String("requestID", requestID))
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	category, err := validators.CategoryValidator(c.PostForm("category"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	private, _ := strconv.ParseBool(c.PostForm("isPrivate"))
	password := c.PostForm("password")

	if private && password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Private files require a password",
			"requestID": requestID,
		})
		return
	}

	if !private {
		password = ""
	}

	// Uploads without an explicit userId fall back to the identity from
	// the auth cookie when one was presented
	userID := c.PostForm("userId")
	if userID == "" {
		userID = c.GetString("userID")
	}

	fileID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate file ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.Store.Store(c.Request.Context(), fileID, fh.Filename, contentType, f, fh.Size)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Error uploading file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store payload", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.Create(&model.File{
		ID:           fileID,
		Filename:     fh.Filename,
		ContentType:  contentType,
		Size:         fh.Size,
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Subject:      c.PostForm("subject"),
		UploaderName: c.PostForm("uploaderName"),
		UserID:       userID,
		Category:     category,
		Private:      private,
		Password:     password,
		CreatedAt:    time.Now().Unix(),
	}).Error
	if err != nil {
		// Don't leave an orphaned payload behind
		if delErr := a.Store.Delete(context.WithoutCancel(c.Request.Context()), fileID); delErr != nil {
			zap.L().Error("Failed to clean up payload after failed upload", zap.Error(delErr), zap.String("id", fileID))
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save file record to db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "File uploaded successfully",
		"fileId":   fileID,
		"filename": fh.Filename,
	})
}
