package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"foodchain-api/internal/service"
	"foodchain-api/pkg/apierror"
	"foodchain-api/pkg/response"
)

// RecognizeHandler handles recognition requests.
type RecognizeHandler struct {
	recognizer *service.Recognizer
}

// NewRecognizeHandler creates a new recognition handler.
func NewRecognizeHandler(recognizer *service.Recognizer) *RecognizeHandler {
	return &RecognizeHandler{recognizer: recognizer}
}

// recognizeRequest is the accepted request schema.
type recognizeRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// Recognize handles POST /api/recognize. The image payload is required
// but never inspected: the prediction is fabricated.
func (h *RecognizeHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	// An empty body is treated like a missing field, not malformed JSON.
	var req recognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	if req.ImageBase64 == "" {
		response.Error(w, apierror.BadRequest("no image"))
		return
	}

	prediction := h.recognizer.Recognize()

	response.OK(w, response.Payload{
		"prediction": prediction,
	})
}
