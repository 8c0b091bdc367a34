package imaging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// Product images are normalized to a fixed square.
	targetSize  = 800
	jpegQuality = 88
)

// Processor center-crops uploaded product images to a square, resizes them
// to 800x800 and stores them as JPEG under the upload directory.
type Processor struct {
	uploadDir string
}

// NewProcessor builds the image processor, creating the upload dir if needed.
func NewProcessor(uploadDir string) (*Processor, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create upload directory: %w", err)
	}
	return &Processor{uploadDir: uploadDir}, nil
}

// Process decodes data, normalizes the image and writes it to the upload
// dir. It returns the stored file name.
func (p *Processor) Process(data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("bad image: %w", err)
	}

	// Fill crops to the center square and resizes in one pass.
	img = imaging.Fill(img, targetSize, targetSize, imaging.Center, imaging.Lanczos)

	name := uuid.NewString() + ".jpg"
	out, err := os.Create(filepath.Join(p.uploadDir, name))
	if err != nil {
		return "", fmt.Errorf("cannot create image file: %w", err)
	}
	defer out.Close()

	if err := imaging.Encode(out, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("cannot encode jpeg: %w", err)
	}
	return name, nil
}

// UploadDir returns the directory images are stored in.
func (p *Processor) UploadDir() string {
	return p.uploadDir
}
