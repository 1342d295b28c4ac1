package processor

import (
	"fmt"
	"os"

	"github.com/phambaophuc/image-annotator/pkg/utils"
)

// discoverImages lists inputDir without recursing and returns the names of
// supported image files in lexical order.
func discoverImages(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputDirectory, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if utils.IsSupportedImage(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
