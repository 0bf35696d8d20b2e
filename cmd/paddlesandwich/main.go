// paddlesandwich is a command-line tool that turns scanned page images into
// searchable PDFs. It sends each image to an OCR engine, normalizes the
// recognized layout, and writes a PDF with the page image dimensions and an
// invisible, positioned text layer.
//
// Usage:
//
//	paddlesandwich -image page.png -output-dir ./out [options]
//
// Input options (one required):
//
//	-image string        Path to a single page image
//	-image-dir string    Directory containing page images
//
// Engine options:
//
//	-engine string        OCR engine: paddle or docai (default paddle)
//	-engine-url string    PaddleOCR service endpoint (overrides config file)
//	-paddle-config string Path to PaddleOCR YAML config
//	-docai-config string  Path to Document AI YAML config
//	-workers int          Number of parallel engine workers (default 1)
//
// Output options:
//
//	-output-dir string   Directory for generated PDFs (required)
//	-image-scale float   Factor the images were scaled by before OCR (default 1.0)
//	-boxes               Draw debug rectangles around text runs
//	-hocr                Also write an hOCR file per page
//	-preview             Also write a visible-text preview PDF per page
//	-overwrite           Overwrite existing output files
//
// Logging options:
//
//	-log-level string    debug, info, warn or error (default info)
//	-log-format string   text or json (default text)
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/dispatch"
	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/docai"
	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/hocr"
	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/paddle"
	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/preview"
	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/sandwich"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

func main() {
	imagePath := flag.String("image", "", "Path to a single page image")
	imageDirPath := flag.String("image-dir", "", "Directory containing page images")
	outputDir := flag.String("output-dir", "", "Directory for generated PDFs (required)")

	engineName := flag.String("engine", "paddle", "OCR engine: paddle or docai")
	engineURL := flag.String("engine-url", "", "PaddleOCR service endpoint (overrides config file)")
	paddleConfigPath := flag.String("paddle-config", "", "Path to PaddleOCR YAML config")
	docaiConfigPath := flag.String("docai-config", "", "Path to Document AI YAML config")
	workers := flag.Int("workers", 1, "Number of parallel engine workers")

	imageScale := flag.Float64("image-scale", 1.0, "Factor the images were scaled by before OCR")
	boxes := flag.Bool("boxes", false, "Draw debug rectangles around text runs")
	hocrOut := flag.Bool("hocr", false, "Also write an hOCR file per page")
	previewOut := flag.Bool("preview", false, "Also write a visible-text preview PDF per page")
	overwrite := flag.Bool("overwrite", false, "Overwrite existing output files")

	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	logger, err := setupLogger(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if *outputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: Must provide -output-dir")
		os.Exit(1)
	}
	if (*imagePath == "") == (*imageDirPath == "") {
		fmt.Fprintln(os.Stderr, "Error: Must provide exactly one of -image or -image-dir")
		os.Exit(1)
	}

	images, err := collectImages(*imagePath, *imageDirPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(images) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No images found")
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	factory, err := engineFactory(*engineName, *engineURL, *paddleConfigPath, *docaiConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pool, err := dispatch.NewPool(*workers, factory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	cfg := sandwich.DefaultConfig()
	cfg.ImageScale = *imageScale
	cfg.Boxes = *boxes
	cfg.Logger = logger

	opts := outputOptions{
		dir:       *outputDir,
		hocr:      *hocrOut,
		preview:   *previewOut,
		boxes:     *boxes,
		overwrite: *overwrite,
	}

	// Submit ahead of completion handling so the workers stay busy while
	// earlier pages are being written out.
	jobs := make(chan pageJob)
	go func() {
		defer close(jobs)
		for _, img := range images {
			data, err := os.ReadFile(img)
			if err != nil {
				jobs <- pageJob{imagePath: img, err: fmt.Errorf("failed to read image: %w", err)}
				continue
			}
			logger.Info("processing", "image", img)
			jobs <- pageJob{imagePath: img, imageData: data, task: pool.Submit(data)}
		}
	}()

	failed := 0
	for job := range jobs {
		if err := finishPage(job, cfg, opts, logger); err != nil {
			logger.Error("page failed", "image", job.imagePath, "error", err)
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d pages failed\n", failed, len(images))
		os.Exit(1)
	}
	logger.Info("done", "pages", len(images))
}

type outputOptions struct {
	dir       string
	hocr      bool
	preview   bool
	boxes     bool
	overwrite bool
}

// pageJob carries one page from submission to output writing.
type pageJob struct {
	imagePath string
	imageData []byte
	task      *dispatch.Task
	err       error
}

// finishPage waits for one page's inference result and writes its outputs.
func finishPage(job pageJob, cfg sandwich.Config, opts outputOptions, logger *slog.Logger) error {
	if job.err != nil {
		return job.err
	}
	base := strings.TrimSuffix(filepath.Base(job.imagePath), filepath.Ext(job.imagePath))
	pdfPath := filepath.Join(opts.dir, base+".pdf")
	if !opts.overwrite {
		if _, err := os.Stat(pdfPath); err == nil {
			return fmt.Errorf("output %s already exists, use -overwrite", pdfPath)
		}
	}

	raw, err := job.task.Wait(context.Background())
	if err != nil {
		return fmt.Errorf("inference failed: %w", err)
	}
	blocks := layout.Normalize(raw, nil)

	if err := sandwich.GeneratePDF(job.imagePath, blocks, pdfPath, cfg); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	logger.Info("wrote pdf", "path", pdfPath, "blocks", len(blocks))

	if opts.hocr {
		if err := writeHOCR(job.imagePath, blocks, filepath.Join(opts.dir, base+".hocr")); err != nil {
			return err
		}
	}
	if opts.preview {
		previewCfg := preview.DefaultConfig()
		previewCfg.Debug = opts.boxes
		data, err := preview.Assemble(job.imageData, blocks, previewCfg)
		if err != nil {
			return fmt.Errorf("failed to generate preview: %w", err)
		}
		previewPath := filepath.Join(opts.dir, base+"_preview.pdf")
		if err := os.WriteFile(previewPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
	}
	return nil
}

func writeHOCR(imagePath string, blocks []layout.Block, outPath string) error {
	info, err := sandwich.ProbeImage(imagePath)
	if err != nil {
		return fmt.Errorf("failed to probe image: %w", err)
	}
	doc := hocr.FromBlocks(filepath.Base(imagePath), info.Width, info.Height, blocks)
	var buf bytes.Buffer
	if err := doc.Generate(&buf); err != nil {
		return fmt.Errorf("failed to render hOCR: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write hOCR: %w", err)
	}
	return nil
}

// engineFactory builds the per-worker engine constructor for the selected
// backend.
func engineFactory(name, url, paddleConfigPath, docaiConfigPath string) (func() (dispatch.Engine, error), error) {
	switch name {
	case "paddle":
		cfg := paddle.DefaultConfig()
		if paddleConfigPath != "" {
			loaded, err := paddle.LoadConfig(paddleConfigPath)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
		if url != "" {
			cfg.Endpoint = url
		}
		return func() (dispatch.Engine, error) {
			return paddle.New(cfg)
		}, nil
	case "docai":
		if docaiConfigPath == "" {
			return nil, fmt.Errorf("-docai-config is required with -engine docai")
		}
		data, err := os.ReadFile(docaiConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		var cfg docai.Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		return func() (dispatch.Engine, error) {
			return docai.New(context.Background(), cfg)
		}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want paddle or docai)", name)
	}
}

func collectImages(imagePath, imageDirPath string) ([]string, error) {
	if imagePath != "" {
		return []string{imagePath}, nil
	}
	entries, err := os.ReadDir(imageDirPath)
	if err != nil {
		return nil, fmt.Errorf("error accessing image directory: %w", err)
	}
	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			images = append(images, filepath.Join(imageDirPath, entry.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}

func setupLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
