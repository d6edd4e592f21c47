// Package classifier is the client for the external pretrained tissue
// classifier. The model is served over HTTP: class labels come from
// <model_url>/metadata.json and inference from POST <model_url>/predict,
// which takes a normalized image tensor and returns one probability per
// class.
//
// Load is called once at startup; the resulting handle is shared by every
// request and never mutated afterward. If loading fails the app starts
// anyway and the predict endpoint answers 500 until a restart.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// inputSize is the side length the model was trained on.
const inputSize = 224

var ErrNotLoaded = errors.New("model not loaded")

// Model is a handle to a loaded remote model.
type Model struct {
	baseURL string
	classes []string
	hc      *http.Client
	log     *zap.Logger
}

// Prediction is the top class for one image.
type Prediction struct {
	Label      string
	Confidence float64 // 0..1
}

// metadata mirrors the metadata.json the model exporter writes.
type metadata struct {
	Labels []string `json:"labels"`
}

// Load fetches the model's class labels and returns a ready handle.
// fallbackClasses is used when the metadata file has no labels.
func Load(ctx context.Context, baseURL string, fallbackClasses []string, logger *zap.Logger) (*Model, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	m := &Model{
		baseURL: baseURL,
		classes: fallbackClasses,
		hc:      &http.Client{Timeout: 30 * time.Second},
		log:     logger,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"metadata.json", nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model metadata: unexpected status %d", resp.StatusCode)
	}

	var meta metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("model metadata: %w", err)
	}
	if len(meta.Labels) > 0 {
		m.classes = meta.Labels
	}
	if len(m.classes) == 0 {
		return nil, errors.New("model metadata has no labels and no fallback classes configured")
	}

	logger.Info("classifier model loaded",
		zap.String("model_url", baseURL),
		zap.Strings("classes", m.classes))
	return m, nil
}

// Classes returns the class labels, in model output order.
func (m *Model) Classes() []string {
	return m.classes
}

// Predict decodes the image, resizes it to the model's input size,
// normalizes pixels to [-1, 1], and runs one inference call.
func (m *Model) Predict(ctx context.Context, imageBytes []byte) (Prediction, error) {
	tensor, err := preprocess(imageBytes)
	if err != nil {
		return Prediction{}, err
	}

	reqBody, err := json.Marshal(map[string]any{"instances": []any{tensor}})
	if err != nil {
		return Prediction{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"predict", bytes.NewReader(reqBody))
	if err != nil {
		return Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.hc.Do(req)
	if err != nil {
		return Prediction{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("model predict: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Predictions [][]float64 `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Prediction{}, fmt.Errorf("model predict: %w", err)
	}
	if len(out.Predictions) == 0 || len(out.Predictions[0]) == 0 {
		return Prediction{}, errors.New("model predict: empty response")
	}

	probs := out.Predictions[0]
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	label := fmt.Sprintf("class %d", best)
	if best < len(m.classes) {
		label = m.classes[best]
	}
	return Prediction{Label: label, Confidence: probs[best]}, nil
}

// preprocess produces a [224][224][3] tensor of pixels scaled to [-1, 1].
func preprocess(imageBytes []byte) ([][][]float32, error) {
	src, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	resized := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	draw.BiLinear.Scale(resized, resized.Bounds(), src, src.Bounds(), draw.Src, nil)

	tensor := make([][][]float32, inputSize)
	for y := 0; y < inputSize; y++ {
		row := make([][]float32, inputSize)
		for x := 0; x < inputSize; x++ {
			i := resized.PixOffset(x, y)
			r := resized.Pix[i]
			g := resized.Pix[i+1]
			b := resized.Pix[i+2]
			row[x] = []float32{
				float32(r)/127.5 - 1,
				float32(g)/127.5 - 1,
				float32(b)/127.5 - 1,
			}
		}
		tensor[y] = row
	}
	return tensor, nil
}

/* ------------------------------------------------------------------ */
/* Shared handle                                                      */
/* ------------------------------------------------------------------ */

// def is written once during Startup and only read afterward.
var def *Model

// SetDefault installs the startup-loaded model.
func SetDefault(m *Model) { def = m }

// Default returns the startup-loaded model, or nil if loading failed.
func Default() *Model { return def }
