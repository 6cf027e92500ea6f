package pdfexport

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"asistencia/internal/domain"
)

// Asset is an image resource read from disk.
type Asset struct {
	Name string
	Type string // fpdf image type: PNG, JPG or GIF
	Data []byte
}

var imageTypes = map[string]string{
	"png":  "PNG",
	"jpeg": "JPG",
	"gif":  "GIF",
}

// LoadAsset reads and sniffs the image at path. A missing, unreadable or
// undecodable file yields an error wrapping domain.ErrMissingAsset.
func LoadAsset(path string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMissingAsset, err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", domain.ErrMissingAsset, path, err)
	}
	imageType, ok := imageTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image format %q in %s", domain.ErrMissingAsset, format, path)
	}

	return &Asset{
		Name: filepath.Base(path),
		Type: imageType,
		Data: data,
	}, nil
}
