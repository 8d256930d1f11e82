// Package model defines database models
package model

// File categories. Galeri entries share the file model but are listed
// separately from tugas.
const (
	CategoryTugas  = "tugas"
	CategoryGaleri = "galeri"
)

// File is the metadata record of one uploaded object. The ID doubles as
// the blob store key, so a row and its payload always travel together.
// Metadata is written once at upload time and never edited, the only
// mutation is a full delete.
type File struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Filename     string `json:"filename"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"size"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Subject      string `json:"subject"`
	UploaderName string `json:"uploaderName"`

	// Optional owner. Nothing enforces that the user still exists,
	// uploads with an arbitrary or absent user id are accepted.
	UserID string `json:"userId"`

	Category string `gorm:"index" json:"category"`

	// Legacy per-file protection. The password is stored as plain text
	// and only checked on download and verify-password, matching the
	// behaviour the old clients expect.
	Private  bool   `json:"isPrivate"`
	Password string `json:"-"`

	CreatedAt int64 `gorm:"not null" json:"uploadDate"`
}
