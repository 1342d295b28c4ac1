package utils

import (
	"path"
	"path/filepath"
	"strings"
)

const outputPrefix = "processed_"

// supportedExtensions matches the input filter of the annotator (lowercase).
var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff"}

// IsSupportedImage reports whether name ends with a supported image
// extension, ignoring case.
func IsSupportedImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range supportedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// OutputFilename returns the name a processed copy of name is written under.
func OutputFilename(name string) string {
	return outputPrefix + filepath.Base(name)
}

// ContentTypeFor guesses the MIME type of an output file from its extension.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

// GenerateStorageKey builds the object key a processed file is mirrored under.
func GenerateStorageKey(jobID, subdir, filename string) string {
	return path.Join("annotated", jobID, subdir, filepath.Base(filename))
}
