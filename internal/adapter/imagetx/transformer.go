// Package imagetx is the image-transform collaborator: it turns uploaded
// raster bytes into stored files, grayscale on ingest and brightness/
// contrast adjustment afterwards.
package imagetx

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ErrBadFilename marks a filename that is empty or escapes the storage
// directory.
var ErrBadFilename = errors.New("invalid image filename")

// Transformer consumes raster data plus a filename and produces a stored
// raster.
type Transformer interface {
	// GrayscaleToProcessed decodes data, converts to grayscale and stores
	// it under filename in the processed directory, returning the path.
	GrayscaleToProcessed(data []byte, filename string) (string, error)
	// Adjust applies brightness/contrast (range -1..1, Jimp scale) to a
	// processed file and stores the result in the finalized directory.
	Adjust(filename string, brightness, contrast float64) (string, error)
}

// FileTransformer stores transformed images on the local filesystem.
type FileTransformer struct {
	processedDir string
	finalizedDir string
}

// NewFileTransformer creates the directories if needed.
func NewFileTransformer(processedDir, finalizedDir string) (*FileTransformer, error) {
	for _, dir := range []string{processedDir, finalizedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return &FileTransformer{processedDir: processedDir, finalizedDir: finalizedDir}, nil
}

func (t *FileTransformer) GrayscaleToProcessed(data []byte, filename string) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	outputPath := filepath.Join(t.processedDir, filename)
	if err := imaging.Save(imaging.Grayscale(img), outputPath); err != nil {
		return "", fmt.Errorf("save processed image: %w", err)
	}
	return outputPath, nil
}

func (t *FileTransformer) Adjust(filename string, brightness, contrast float64) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	img, err := imaging.Open(filepath.Join(t.processedDir, filename))
	if err != nil {
		return "", fmt.Errorf("open processed image: %w", err)
	}

	// Clients send Jimp-scale values in -1..1; imaging wants percentages.
	adjusted := imaging.AdjustBrightness(img, brightness*100)
	adjusted = imaging.AdjustContrast(adjusted, contrast*100)

	outputPath := filepath.Join(t.finalizedDir, filename)
	if err := imaging.Save(adjusted, outputPath); err != nil {
		return "", fmt.Errorf("save finalized image: %w", err)
	}
	return outputPath, nil
}

func validateFilename(filename string) error {
	if filename == "" || filename != filepath.Base(filename) {
		return fmt.Errorf("%w: %q", ErrBadFilename, filename)
	}
	return nil
}
