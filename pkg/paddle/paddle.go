// Package paddle talks to a PaddleOCR structure-analysis service over HTTP
// and converts its responses into the raw layout result consumed by the
// rest of the pipeline.
//
// Main Functions:
//
// - LoadConfig: reads the engine configuration from a YAML file
// - New: creates an engine bound to a service endpoint
// - Engine.Predict: runs structure analysis on one page image
package paddle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

// Engine is a client for a PaddleOCR inference service.
type Engine struct {
	cfg    Config
	client *http.Client
}

// New creates an Engine from cfg. The endpoint must be set.
func New(cfg Config) (*Engine, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("paddle: endpoint is required")
	}
	if err := cfg.resolveLanguages(); err != nil {
		return nil, err
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &Engine{
		cfg: cfg,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

type predictRequest struct {
	ImageB64             string   `json:"image"`
	Languages            []string `json:"languages,omitempty"`
	DetectionModelName   string   `json:"text_detection_model_name,omitempty"`
	DetectionModelDir    string   `json:"text_detection_model_dir,omitempty"`
	RecognitionModelName string   `json:"text_recognition_model_name,omitempty"`
	RecognitionModelDir  string   `json:"text_recognition_model_dir,omitempty"`
}

type predictResponse struct {
	Words []struct {
		BBox  [4]float64 `json:"bbox"`
		Text  string     `json:"text"`
		Label string     `json:"label"`
		Score float64    `json:"score"`
	} `json:"words"`
	Blocks []struct {
		BBox    [4]float64 `json:"bbox"`
		Label   string     `json:"label"`
		Content string     `json:"content"`
	} `json:"blocks"`
	Error string `json:"error,omitempty"`
}

// Predict sends one page image to the service and returns the recognized
// words and layout blocks in pixel coordinates.
func (e *Engine) Predict(ctx context.Context, image []byte) (*layout.RawResult, error) {
	payload := predictRequest{
		ImageB64:             base64.StdEncoding.EncodeToString(image),
		Languages:            e.cfg.paddleLanguages,
		DetectionModelName:   e.cfg.DetectionModelName,
		DetectionModelDir:    e.cfg.DetectionModelDir,
		RecognitionModelName: e.cfg.RecognitionModelName,
		RecognitionModelDir:  e.cfg.RecognitionModelDir,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.AuthToken)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("inference failed: status %d: %s", resp.StatusCode, data)
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("inference failed: %s", parsed.Error)
	}
	return toRawResult(&parsed), nil
}

func toRawResult(resp *predictResponse) *layout.RawResult {
	result := &layout.RawResult{}
	for _, w := range resp.Words {
		result.Words = append(result.Words, layout.Word{
			BBox:  layout.NewBBox(w.BBox[0], w.BBox[1], w.BBox[2], w.BBox[3]),
			Text:  w.Text,
			Label: w.Label,
			Score: w.Score,
		})
	}
	for _, b := range resp.Blocks {
		result.Blocks = append(result.Blocks, layout.RawBlock{
			BBox:    layout.NewBBox(b.BBox[0], b.BBox[1], b.BBox[2], b.BBox[3]),
			Label:   b.Label,
			Content: b.Content,
		})
	}
	return result
}
