// Command vectorize converts a local raster image, or one downloaded from a
// URL, to SVG using the same pipeline as the web service.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/CorrelAid/svg_converter/inits"
	"github.com/CorrelAid/svg_converter/models"
	"github.com/CorrelAid/svg_converter/operations"
	"github.com/CorrelAid/svg_converter/validators"
	"github.com/CorrelAid/svg_converter/vectorize"
)

func main() {
	var (
		in        = flag.String("in", "", "raster image to convert")
		rawURL    = flag.String("url", "", "download the raster image from this URL")
		out       = flag.String("out", models.DownloadFileName, "where to write the SVG")
		colorMode = flag.String("colormode", models.ColorModeColor, "color or binary")
	)
	flag.Parse()

	if err := run(context.Background(), *in, *rawURL, *out, *colorMode); err != nil {
		fmt.Fprintf(os.Stderr, "vectorize: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, in, rawURL, out, colorMode string) error {
	if (in == "") == (rawURL == "") {
		return fmt.Errorf("exactly one of -in or -url is required")
	}

	mode, err := validators.NormalizeColorMode(colorMode)
	if err != nil {
		return err
	}

	inits.LoadEnv(".env")
	cfg, err := inits.ConfigFromEnv()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	db, err := inits.DBInit()
	if err != nil {
		return err
	}
	scratch := operations.NewScratch(db, cfg.ScratchDir, cfg.ScratchTTL)

	var artifact *models.ScratchArtifact
	if rawURL != "" {
		artifact, err = stageDownload(ctx, scratch, cfg.ScratchDir, rawURL)
	} else {
		artifact, err = stageFile(scratch, in)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := scratch.Release(artifact); err != nil {
			log.Printf("Releasing scratch artifact failed: id=%s err=%v", artifact.ID, err)
		}
	}()

	converter := vectorize.WithTimeout(vectorize.NewVTracer(cfg.VTracerPath), cfg.ConversionTimeout)
	opts := models.DefaultConversionOptions().WithColorMode(mode)
	if err := converter.Convert(ctx, artifact.InputPath, artifact.OutputPath, opts); err != nil {
		return err
	}

	return copyFile(artifact.OutputPath, out)
}

func stageFile(scratch *operations.Scratch, in string) (*models.ScratchArtifact, error) {
	if err := validators.ValidateFileName(in); err != nil {
		return nil, fmt.Errorf("%s: %w", in, err)
	}
	f, err := os.Open(in)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return scratch.Stage(filepath.Base(in), f)
}

// stageDownload fetches rawURL and stages it under the extension matching
// the served image type, whatever the URL path looks like.
func stageDownload(ctx context.Context, scratch *operations.Scratch, dir, rawURL string) (*models.ScratchArtifact, error) {
	tmp, err := os.CreateTemp(dir, "download-*")
	if err != nil {
		return nil, fmt.Errorf("creating download file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	ok, msg, mediaType := operations.FetchImage(ctx, rawURL, tmpPath)
	if !ok {
		return nil, fmt.Errorf("%s", msg)
	}
	fmt.Println(msg)

	ext := operations.ImageExtension(mediaType)
	if ext == "" {
		return nil, fmt.Errorf("unsupported image type %q: %w", mediaType, validators.ErrInvalidFileType)
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return scratch.Stage("download"+ext, f)
}

func copyFile(src, dst string) error {
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
