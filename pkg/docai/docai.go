// Package docai adapts Google Document AI as an inference engine. It sends
// page images to a Document AI OCR processor and converts the returned
// Document proto into the raw layout result shared by all engines.
//
// Main Functions:
//
// - New: creates an engine bound to a Document AI processor
// - Engine.Predict: runs OCR on one page image
// - ToJSON: dumps an engine response as JSON for debugging
package docai

import (
	"context"
	"fmt"
	"net/http"
	"os"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

// Config identifies the Document AI processor to use. Credentials come from
// the GOOGLE_APPLICATION_CREDENTIALS environment variable.
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

// Engine is a Document AI backed inference engine.
type Engine struct {
	cfg    Config
	client *documentai.DocumentProcessorClient
}

// New creates an Engine and its underlying Document AI client.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	if cfg.ProjectID == "" || cfg.Location == "" || cfg.ProcessorID == "" {
		return nil, fmt.Errorf("docai: project_id, location and processor_id are required")
	}
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)
	client, err := documentai.NewDocumentProcessorClient(
		ctx,
		option.WithEndpoint(endpoint),
		option.WithCredentialsFile(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	return &Engine{cfg: cfg, client: client}, nil
}

// Close releases the underlying client connection.
func (e *Engine) Close() error {
	return e.client.Close()
}

// Predict sends one page image to the processor and returns the recognized
// words and layout blocks in pixel coordinates.
func (e *Engine) Predict(ctx context.Context, image []byte) (*layout.RawResult, error) {
	name := fmt.Sprintf(
		"projects/%s/locations/%s/processors/%s",
		e.cfg.ProjectID, e.cfg.Location, e.cfg.ProcessorID,
	)
	req := &documentaipb.ProcessRequest{
		Name: name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  image,
				MimeType: http.DetectContentType(image),
			},
		},
		SkipHumanReview: true,
	}

	resp, err := e.client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}
	return resultFromDocument(resp.Document), nil
}
