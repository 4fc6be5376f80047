package validation

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/username/policyfeed/src/logger"
)

// allowedFixtureContentTypes lists the detected MIME types accepted for seed
// files. YAML and JSON both sniff as plain text.
var allowedFixtureContentTypes = map[string]bool{
	"text/plain":       true,
	"application/json": true,
}

// ValidateFixtureContent checks by magic bytes that a seed file is text, then
// rewinds it for the decoder.
func ValidateFixtureContent(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", err)
	}

	detected := http.DetectContentType(buffer[:n])
	baseType := strings.TrimSpace(strings.Split(detected, ";")[0])
	if !allowedFixtureContentTypes[baseType] {
		logger.L.Warn("Rejected fixture file by content sniffing", "detectedContentType", detected)
		return detected, fmt.Errorf("fixture content type '%s' is not allowed", detected)
	}
	return detected, nil
}
