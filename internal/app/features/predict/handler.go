// internal/app/features/predict/handler.go
package predict

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/yvelmence/tissuefinder/internal/app/system/classifier"
	"github.com/yvelmence/tissuefinder/internal/app/system/httpjson"
	"github.com/yvelmence/tissuefinder/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// maxImageBytes caps the uploaded histology image.
const maxImageBytes = 16 << 20 // 16 MiB

// Handler exposes the classifier over HTTP. The model handle is resolved
// per request so a model that failed to load at startup surfaces as a 500
// rather than a crash, matching how the chatbot page reports it.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// HandlePredict classifies one uploaded image. The response keys and the
// percent-formatted confidence are part of the chatbot page's contract.
//
// Route: POST /predict (multipart field "image")
func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	model := classifier.Default()
	if model == nil {
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"error": "Model not loaded"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		httpjson.Write(w, http.StatusBadRequest, map[string]string{"error": "No image uploaded"})
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		httpjson.Write(w, http.StatusBadRequest, map[string]string{"error": "No image uploaded"})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		httpjson.Write(w, http.StatusBadRequest, map[string]string{"error": "No image uploaded"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Model())
	defer cancel()

	pred, err := model.Predict(ctx, imageBytes)
	if err != nil {
		h.Log.Error("prediction failed", zap.Error(err))
		httpjson.Write(w, http.StatusInternalServerError, map[string]string{"error": "Prediction failed"})
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"label":      pred.Label,
		"confidence": fmt.Sprintf("%.2f%%", pred.Confidence*100),
	})
}
