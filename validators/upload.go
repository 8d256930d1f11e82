// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"pioo/tugas-api/model"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileNameTooLong = errors.New("file name is too long")
	ErrNoFile          = errors.New("no file uploaded")
	ErrInvalidCategory = errors.New("category must be tugas or galeri")
)

const maxFileNameSize = 255

var validCategories = []string{model.CategoryTugas, model.CategoryGaleri}

// FileValidator checks the upload against the configured limits and
// returns the opened file together with its resolved content type. When
// the client declares no usable type the first bytes are sniffed
// instead. The returned file is positioned at the start.
func FileValidator(fh *multipart.FileHeader) (int, multipart.File, string, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, "", ErrNoFile
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, "", ErrFileNameTooLong
	}

	if fh.Size > viper.GetInt64("upload.max_size") {
		return http.StatusRequestEntityTooLarge, nil, "", ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, "", err
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		mime, err := mimetype.DetectReader(f)
		if err != nil {
			f.Close()
			return http.StatusInternalServerError, nil, "", err
		}

		ct = mime.String()
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	return 0, f, ct, nil
}

// CategoryValidator normalizes the category form field. An empty value
// defaults to tugas.
func CategoryValidator(category string) (string, error) {
	if category == "" {
		return model.CategoryTugas, nil
	}

	if !slices.Contains(validCategories, category) {
		return "", ErrInvalidCategory
	}

	return category, nil
}
