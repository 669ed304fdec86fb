package vectorize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/CorrelAid/svg_converter/models"
)

// VTracer runs the vtracer command line tool.
type VTracer struct {
	Path string
}

func NewVTracer(path string) *VTracer {
	return &VTracer{Path: path}
}

// Args maps opts onto vtracer flags. max_iterations has no flag.
func Args(inputPath, outputPath string, opts models.ConversionOptions) []string {
	return []string{
		"--input", inputPath,
		"--output", outputPath,
		"--colormode", opts.ColorMode,
		"--hierarchical", opts.Hierarchical,
		"--mode", opts.Mode,
		"--filter_speckle", strconv.Itoa(opts.FilterSpeckle),
		"--color_precision", strconv.Itoa(opts.ColorPrecision),
		"--gradient_step", strconv.Itoa(opts.LayerDifference),
		"--corner_threshold", strconv.Itoa(opts.CornerThreshold),
		"--segment_length", strconv.FormatFloat(opts.LengthThreshold, 'f', -1, 64),
		"--splice_threshold", strconv.Itoa(opts.SpliceThreshold),
		"--path_precision", strconv.Itoa(opts.PathPrecision),
	}
}

func (v *VTracer) Convert(ctx context.Context, inputPath, outputPath string, opts models.ConversionOptions) error {
	if _, err := os.Stat(inputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
		}
		return fmt.Errorf("checking input: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	log.Printf("Converting %s to SVG: colormode=%s", inputPath, opts.ColorMode)

	cmd := exec.CommandContext(ctx, v.Path, Args(inputPath, outputPath, opts)...)
	cmd.WaitDelay = 5 * time.Second
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("vtracer: %w", ctxErr)
		}
		return fmt.Errorf("vtracer: %w: %s", err, strings.TrimSpace(string(out)))
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoOutput, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s is empty", ErrNoOutput, outputPath)
	}

	log.Printf("Vector saved: output=%s bytes=%d", outputPath, info.Size())
	return nil
}
