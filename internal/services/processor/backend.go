package processor

import (
	"errors"
	"image"

	"github.com/phambaophuc/image-annotator/internal/models"
	"golang.org/x/image/draw"
)

var (
	// ErrNoImage is returned by a backend whose loader produced no image
	// for a file, as opposed to failing with a decode error.
	ErrNoImage = errors.New("no image decoded")

	// ErrInputDirectory means the input directory is missing or unlistable.
	ErrInputDirectory = errors.New("input directory not readable")

	// ErrBatchInterrupted is returned with a partial report when the context
	// is done before every file was processed.
	ErrBatchInterrupted = errors.New("batch interrupted")
)

// Backend is one imaging library able to run the annotate pipeline.
type Backend interface {
	Name() string
	Decode(path string) (image.Image, error)
	Resize(img image.Image, size models.Size) (draw.Image, error)
	DrawRectangle(dst draw.Image, r RectRegion, stroke int) error
	Encode(img image.Image, path string) error
}

// Pipeline binds a backend to the output subdirectory it writes into.
type Pipeline struct {
	Backend Backend
	Subdir  string
}

const (
	PillowSubdir = "pillow_results"
	OpenCVSubdir = "opencv_results"
)

func DefaultPipelines() []Pipeline {
	return []Pipeline{
		{Backend: NewImagingBackend(), Subdir: PillowSubdir},
		{Backend: NewNativeBackend(), Subdir: OpenCVSubdir},
	}
}
