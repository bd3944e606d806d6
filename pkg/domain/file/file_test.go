package file

import (
	"encoding/base64"
	"testing"

	"github.com/atelier-ai/atelier/pkg/domain/chat"
)

func TestTypeForFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"voice.mp3", "audio"},
		{"clip.WAV", "audio"},
		{"photo.png", "image"},
		{"photo.JPEG", "image"},
		{"movie.mp4", "video"},
		{"notes.md", "text"},
		{"data.yaml", "text"},
		{"archive.zip", "file"},
		{"no_extension", "file"},
		{"", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := TypeForFilename(tt.filename); got != tt.want {
				t.Errorf("%q: expected %q, got %q", tt.filename, tt.want, got)
			}
		})
	}
}

func TestNewContentReference(t *testing.T) {
	raw := []byte("hello world")
	ref := NewContentReference("/tmp/uploads/notes.txt", raw)

	if ref.Filename != "notes.txt" {
		t.Errorf("expected base filename, got %q", ref.Filename)
	}
	if ref.Type != "text" {
		t.Errorf("expected type %q, got %q", "text", ref.Type)
	}

	decoded, err := base64.StdEncoding.DecodeString(ref.Content)
	if err != nil {
		t.Fatalf("content is not valid base64: %v", err)
	}
	if string(decoded) != "hello world" {
		t.Errorf("expected round-tripped content %q, got %q", "hello world", decoded)
	}
}

func TestHasTranscript(t *testing.T) {
	tests := []struct {
		name string
		ref  *Reference
		want bool
	}{
		{name: "nil reference", ref: nil, want: false},
		{name: "no transcript", ref: &Reference{Filename: "a.mp3"}, want: false},
		{
			name: "empty transcript content",
			ref:  &Reference{Transcript: &chat.Message{}},
			want: false,
		},
		{
			name: "transcript present",
			ref:  &Reference{Transcript: &chat.Message{Content: "spoken words"}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.HasTranscript(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
