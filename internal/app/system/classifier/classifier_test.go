package classifier_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yvelmence/tissuefinder/internal/app/system/classifier"
	"go.uber.org/zap"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLoad_UsesServedLabels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metadata.json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"labels": []string{"bone", "blood"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	model, err := classifier.Load(context.Background(), srv.URL, []string{"ignored"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	classes := model.Classes()
	if len(classes) != 2 || classes[0] != "bone" || classes[1] != "blood" {
		t.Errorf("classes: got %v", classes)
	}
}

func TestLoad_FallsBackToConfiguredClasses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metadata.json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"labels": []string{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	model, err := classifier.Load(context.Background(), srv.URL, []string{"liver", "lung"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if classes := model.Classes(); len(classes) != 2 || classes[0] != "liver" {
		t.Errorf("classes: got %v", classes)
	}
}

func TestLoad_NoLabelsAnywhere(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metadata.json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"labels": []string{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	if _, err := classifier.Load(context.Background(), srv.URL, nil, zap.NewNop()); err == nil {
		t.Error("expected an error with no labels and no fallback")
	}
}

func TestLoad_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	if _, err := classifier.Load(context.Background(), srv.URL, []string{"x"}, zap.NewNop()); err == nil {
		t.Error("expected an error when the model service is unreachable")
	}
}

func TestPredict_ArgmaxAndTensorShape(t *testing.T) {
	var gotInstances []any

	mux := http.NewServeMux()
	mux.HandleFunc("/metadata.json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"labels": []string{"a", "b", "c"}})
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Instances []any `json:"instances"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotInstances = in.Instances
		_ = json.NewEncoder(w).Encode(map[string]any{
			"predictions": [][]float64{{0.1, 0.2, 0.7}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	model, err := classifier.Load(context.Background(), srv.URL, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	pred, err := model.Predict(context.Background(), encodePNG(t, 50, 30))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if pred.Label != "c" {
		t.Errorf("label: got %q, want %q", pred.Label, "c")
	}
	if pred.Confidence != 0.7 {
		t.Errorf("confidence: got %v, want 0.7", pred.Confidence)
	}

	// One instance, resized to 224 rows of 224 pixels regardless of the
	// source dimensions.
	if len(gotInstances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(gotInstances))
	}
	rows, ok := gotInstances[0].([]any)
	if !ok || len(rows) != 224 {
		t.Fatalf("expected 224 rows, got %T of len %d", gotInstances[0], len(rows))
	}
	row, ok := rows[0].([]any)
	if !ok || len(row) != 224 {
		t.Fatalf("expected 224 pixels per row, got %d", len(row))
	}
	px, ok := row[0].([]any)
	if !ok || len(px) != 3 {
		t.Fatalf("expected 3 channels per pixel, got %d", len(px))
	}
	for i, ch := range px {
		v, ok := ch.(float64)
		if !ok || v < -1.0001 || v > 1.0001 {
			t.Errorf("channel %d out of [-1, 1]: %v", i, ch)
		}
	}
}

func TestPredict_RejectsGarbageImage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metadata.json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"labels": []string{"a"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	model, err := classifier.Load(context.Background(), srv.URL, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := model.Predict(context.Background(), []byte("not an image")); err == nil {
		t.Error("expected a decode error for garbage bytes")
	}
}
