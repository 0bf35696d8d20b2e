package paddle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paddle.yaml")
	content := `endpoint: http://localhost:8080/predict
auth_token: secret
languages: [deu, eng]
text_detection_model_name: PP-OCRv5_server_det
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Endpoint != "http://localhost:8080/predict" {
		t.Errorf("endpoint = %q", cfg.Endpoint)
	}
	if cfg.AuthToken != "secret" {
		t.Errorf("auth_token = %q", cfg.AuthToken)
	}
	if len(cfg.Languages) != 2 || cfg.Languages[0] != "deu" {
		t.Errorf("languages = %v", cfg.Languages)
	}
	if cfg.TimeoutSeconds != 120 {
		t.Errorf("timeout = %d, want default 120", cfg.TimeoutSeconds)
	}
	if cfg.DetectionModelName != "PP-OCRv5_server_det" {
		t.Errorf("detection model = %q", cfg.DetectionModelName)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestNewRejectsUnknownLanguage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoint = "http://localhost:8080"
	cfg.Languages = []string{"xyz"}
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestNewRequiresEndpoint(t *testing.T) {
	if _, err := New(DefaultConfig()); err == nil {
		t.Fatal("expected error for missing endpoint")
	}
}

func TestPredict(t *testing.T) {
	image := []byte("not-a-real-png")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing auth header")
		}
		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		decoded, err := base64.StdEncoding.DecodeString(req.ImageB64)
		if err != nil || string(decoded) != string(image) {
			t.Errorf("image round trip failed: %v", err)
		}
		if len(req.Languages) != 1 || req.Languages[0] != "de" {
			t.Errorf("languages = %v, want [de]", req.Languages)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"words": [
				{"bbox": [10, 10, 90, 30], "text": "Hi", "label": "text", "score": 0.97}
			],
			"blocks": [
				{"bbox": [5, 5, 195, 95], "label": "text", "content": "Hi"}
			]
		}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.AuthToken = "secret"
	cfg.Languages = []string{"deu"}
	engine, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := engine.Predict(context.Background(), image)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(result.Words) != 1 || len(result.Blocks) != 1 {
		t.Fatalf("result = %d words, %d blocks", len(result.Words), len(result.Blocks))
	}
	w := result.Words[0]
	if w.Text != "Hi" || w.Score != 0.97 {
		t.Errorf("word = %+v", w)
	}
	if w.BBox.X1 != 10 || w.BBox.Y2 != 30 {
		t.Errorf("word bbox = %+v", w.BBox)
	}
	if result.Blocks[0].Label != "text" {
		t.Errorf("block label = %q", result.Blocks[0].Label)
	}
}

func TestPredictServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	engine, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := engine.Predict(context.Background(), []byte("img")); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestPredictErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "unsupported image format"}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	engine, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := engine.Predict(context.Background(), []byte("img")); err == nil {
		t.Fatal("expected error from error field")
	}
}
