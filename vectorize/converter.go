// Package vectorize binds the external raster-to-SVG tracer.
package vectorize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CorrelAid/svg_converter/models"
)

var (
	ErrInputNotFound = errors.New("input file not found")
	ErrNoOutput      = errors.New("conversion produced no output")
	ErrTimeout       = errors.New("conversion timed out")
)

// Converter turns the raster image at inputPath into an SVG document at
// outputPath. Implementations block until the document is written or the
// conversion fails, and must return promptly once ctx is done: callers
// delete both paths as soon as Convert returns.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string, opts models.ConversionOptions) error
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, inputPath, outputPath string, opts models.ConversionOptions) error

func (f ConverterFunc) Convert(ctx context.Context, inputPath, outputPath string, opts models.ConversionOptions) error {
	return f(ctx, inputPath, outputPath, opts)
}

type timeoutConverter struct {
	next    Converter
	timeout time.Duration
}

// WithTimeout bounds every call to c by d. A call that is still running at
// the deadline fails with ErrTimeout once c has returned, so no write to
// outputPath can happen after Convert returns.
func WithTimeout(c Converter, d time.Duration) Converter {
	if d <= 0 {
		return c
	}
	return &timeoutConverter{next: c, timeout: d}
}

func (t *timeoutConverter) Convert(ctx context.Context, inputPath, outputPath string, opts models.ConversionOptions) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := t.next.Convert(ctx, inputPath, outputPath, opts)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, t.timeout)
	}
	return err
}
