package validators

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/CorrelAid/svg_converter/models"
)

var (
	ErrNoFile           = errors.New("no file selected")
	ErrInvalidFileType  = errors.New("invalid file type")
	ErrFileTooLarge     = errors.New("file size exceeds the maximum limit")
	ErrInvalidColorMode = errors.New("invalid color mode")
)

// ValidateConversionRequest checks the upload and returns a copy with the
// color mode normalized. A non-positive maxSize disables the size check.
func ValidateConversionRequest(req models.ConversionRequest, maxSize int64) (models.ConversionRequest, error) {
	if req.FileName() == "" {
		return models.ConversionRequest{}, ErrNoFile
	}

	if err := ValidateFileName(req.FileName()); err != nil {
		return models.ConversionRequest{}, err
	}

	if maxSize > 0 && req.File.Size > maxSize {
		return models.ConversionRequest{}, ErrFileTooLarge
	}

	mode, err := NormalizeColorMode(req.ColorMode)
	if err != nil {
		return models.ConversionRequest{}, err
	}

	return models.ConversionRequest{
		File:      req.File,
		ColorMode: mode,
	}, nil
}

// ValidateFileName accepts names whose extension is an allowed image type,
// ignoring case.
func ValidateFileName(name string) error {
	if name == "" {
		return ErrNoFile
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range models.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return ErrInvalidFileType
}

// NormalizeColorMode maps an empty value to the default mode and rejects
// anything outside the supported set.
func NormalizeColorMode(mode string) (string, error) {
	switch strings.TrimSpace(mode) {
	case "":
		return models.ColorModeColor, nil
	case models.ColorModeColor:
		return models.ColorModeColor, nil
	case models.ColorModeBinary:
		return models.ColorModeBinary, nil
	}
	return "", ErrInvalidColorMode
}
