package upload

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"adcraft/internal/domain"
)

// DefaultMaxBytes is the upload ceiling applied when none is configured.
const DefaultMaxBytes = 5 * 1024 * 1024

var allowedMIMEs = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// svgActiveContent matches executable markup inside SVG payloads: script
// blocks, javascript: URLs, and on* event-handler attributes.
var svgActiveContent = regexp.MustCompile(`(?i)<script|javascript:|[\s"']on[a-z]+\s*=`)

// Candidate is a file as declared at upload time. Never mutated after
// acceptance.
type Candidate struct {
	Data         []byte
	DeclaredMIME string
	FileName     string
	SizeBytes    int64
}

// Accepted describes a candidate that passed validation, carrying its
// sanitized filename.
type Accepted struct {
	FileName  string
	MIME      string
	SizeBytes int64
}

// Validator gates files entering the pipeline. Checks are synchronous and
// terminal: a candidate is either accepted or rejected with one fixed reason.
type Validator struct {
	maxBytes int64
}

func NewValidator(maxBytes int64) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Validator{maxBytes: maxBytes}
}

// MaxBytes returns the configured size ceiling.
func (v *Validator) MaxBytes() int64 {
	return v.maxBytes
}

// Validate runs the type, size, and content-safety checks in order. Rejection
// reasons are user-facing strings rendered verbatim by the form UI.
func (v *Validator) Validate(c Candidate) (*Accepted, error) {
	mime := strings.ToLower(strings.TrimSpace(c.DeclaredMIME))
	if !allowedMIMEs[mime] {
		return nil, domain.NewValidationError("Invalid file type")
	}
	if c.SizeBytes > v.maxBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("File of %d bytes exceeds maximum allowed size of %d bytes", c.SizeBytes, v.maxBytes))
	}
	if isSVG(mime, c.FileName) && svgActiveContent.Match(c.Data) {
		return nil, domain.NewValidationError("File contains potentially malicious content")
	}
	return &Accepted{
		FileName:  SanitizeFileName(c.FileName),
		MIME:      mime,
		SizeBytes: c.SizeBytes,
	}, nil
}

// SanitizeFileName strips path traversal sequences and path separators while
// preserving the extension and the remaining characters.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", "")
	}
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." {
		return "upload"
	}
	return name
}

func isSVG(mime, name string) bool {
	if mime == "image/svg+xml" {
		return true
	}
	return strings.EqualFold(filepath.Ext(name), ".svg")
}
