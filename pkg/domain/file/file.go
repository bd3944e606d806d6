// Package file defines the file bounded context: references to binary
// content stored by the remote backend, optionally augmented with a
// transcript generated on demand.
package file

import (
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/atelier-ai/atelier/pkg/domain/chat"
)

// ---------------------------------------------------------------------------
// File reference
// ---------------------------------------------------------------------------

// Reference mirrors one backend file record. The binary payload itself stays
// on the backend; the client sees metadata and, when present, a transcript.
type Reference struct {
	ID       string `json:"_id,omitempty"`
	Filename string `json:"filename"`
	Type     string `json:"type,omitempty"`
	Size     int64  `json:"file_size,omitempty"`

	// Transcript is the message produced by on-demand transcription, if any.
	Transcript *chat.Message `json:"transcript,omitempty"`

	LastAccessed string `json:"last_accessed,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// HasTranscript reports whether a transcript was already generated.
func (r *Reference) HasTranscript() bool {
	return r != nil && r.Transcript != nil && r.Transcript.Content != ""
}

// ---------------------------------------------------------------------------
// Upload payload
// ---------------------------------------------------------------------------

// ContentReference carries binary content to the backend as base64, used for
// both initial upload and content replacement.
type ContentReference struct {
	Filename string `json:"filename"`
	Type     string `json:"type,omitempty"`
	Content  string `json:"content"`
}

// NewContentReference encodes raw bytes for upload. The file type is derived
// from the filename extension.
func NewContentReference(filename string, raw []byte) ContentReference {
	return ContentReference{
		Filename: filepath.Base(filename),
		Type:     TypeForFilename(filename),
		Content:  base64.StdEncoding.EncodeToString(raw),
	}
}

// TypeForFilename maps a filename extension to the backend's file type
// vocabulary. Unknown extensions are reported as "file".
func TypeForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3", ".wav", ".ogg", ".flac", ".m4a":
		return "audio"
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
		return "image"
	case ".mp4", ".webm", ".mov", ".avi":
		return "video"
	case ".txt", ".md", ".json", ".yaml", ".yml", ".csv":
		return "text"
	default:
		return "file"
	}
}

// ---------------------------------------------------------------------------
// Domain errors
// ---------------------------------------------------------------------------

type FileError string

func (e FileError) Error() string { return string(e) }

const (
	ErrFileNotFound FileError = "file not found"
	ErrNoTranscript FileError = "file has no transcript"
	ErrEmptyContent FileError = "file content cannot be empty"
)
