// internal/app/features/forum/upload.go
package forum

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yvelmence/tissuefinder/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// maxUploadBytes caps a single media upload.
const maxUploadBytes = 32 << 20 // 32 MiB

// HandleUpload stores an uploaded image or video and returns the URL it
// will be served under. Posts reference the URL in their imageUrl field,
// as an alternative to inlining a base64 data URI.
//
// Route: POST /api/forum/upload (multipart field "file")
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		httpjson.Error(w, http.StatusBadRequest, "only image and video uploads are accepted")
		return
	}

	// Unique name: uuid prefix + sanitized original filename.
	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(header.Filename))

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.Log.Error("create upload dir failed", zap.Error(err), zap.String("dir", h.uploadDir))
		httpjson.Error(w, http.StatusInternalServerError, "Error storing upload")
		return
	}

	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		h.Log.Error("create upload file failed", zap.Error(err), zap.String("name", name))
		httpjson.Error(w, http.StatusInternalServerError, "Error storing upload")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.Log.Error("write upload failed", zap.Error(err), zap.String("name", name))
		httpjson.Error(w, http.StatusInternalServerError, "Error storing upload")
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]string{
		"url": strings.TrimSuffix(h.uploadURL, "/") + "/" + name,
	})
}

// sanitizeFilename strips path components and replaces characters that
// could be problematic in filenames.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			result = append(result, c)
		case c == '.', c == '-', c == '_':
			result = append(result, c)
		default:
			result = append(result, '_')
		}
	}
	if len(result) == 0 {
		return "upload"
	}
	return string(result)
}
