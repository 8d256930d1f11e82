package api

import (
	"net/http"

	"pioo/tugas-api/model"
	"pioo/tugas-api/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fileEntry is one list row. Missing metadata gets filled with defaults
// so clients never have to deal with absent required fields.
type fileEntry struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Subject      string `json:"subject"`
	UploaderName string `json:"uploaderName"`
	UserID       string `json:"userId,omitempty"`
	Category     string `json:"category"`
	IsPrivate    bool   `json:"isPrivate"`
	UploadDate   int64  `json:"uploadDate"`
	Size         int64  `json:"size"`
	ContentType  string `json:"contentType"`
}

// TugasList returns every non-galeri object.
func (a *API) TugasList(c *gin.Context) {
	a.fileList(c, storage.ListFilter{NotCategory: model.CategoryGaleri})
}

// GaleriList returns galeri objects only.
func (a *API) GaleriList(c *gin.Context) {
	a.fileList(c, storage.ListFilter{Category: model.CategoryGaleri})
}

func (a *API) fileList(c *gin.Context, filter storage.ListFilter) {
	requestID := c.MustGet("requestID").(string)

	var files []model.File

	err := a.DB.
		Scopes(filter.Scope()).
		Find(&files).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	entries := make([]fileEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, newFileEntry(f))
	}

	c.JSON(http.StatusOK, entries)
}

func newFileEntry(f model.File) fileEntry {
	e := fileEntry{
		ID:           f.ID,
		Filename:     f.Filename,
		Title:        f.Title,
		Description:  f.Description,
		Subject:      f.Subject,
		UploaderName: f.UploaderName,
		UserID:       f.UserID,
		Category:     f.Category,
		IsPrivate:    f.Private,
		UploadDate:   f.CreatedAt,
		Size:         f.Size,
		ContentType:  f.ContentType,
	}

	if e.Title == "" {
		e.Title = "Untitled"
	}
	if e.UploaderName == "" {
		e.UploaderName = "Unknown"
	}
	if e.Category == "" {
		e.Category = model.CategoryTugas
	}
	if e.ContentType == "" {
		e.ContentType = "application/octet-stream"
	}

	return e
}
