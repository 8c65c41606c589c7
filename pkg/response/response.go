package response

import (
	"encoding/json"
	"net/http"

	"foodchain-api/pkg/apierror"
)

// Payload holds the response fields merged next to the "ok" flag,
// e.g. {"ok":true, "item": {...}}.
type Payload map[string]interface{}

// JSON sends a JSON response with the given status code. The payload keys
// are emitted at the top level alongside "ok": true.
func JSON(w http.ResponseWriter, statusCode int, payload Payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	body := make(map[string]interface{}, len(payload)+1)
	body["ok"] = true
	for k, v := range payload {
		body[k] = v
	}

	_ = json.NewEncoder(w).Encode(body)
}

// OK sends a 200 OK response.
func OK(w http.ResponseWriter, payload Payload) {
	JSON(w, http.StatusOK, payload)
}

// Error sends an error response of the form {"error": <message>}.
func Error(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*apierror.Error)
	if !ok {
		apiErr = apierror.InternalError("an unexpected error occurred")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	w.Write(apiErr.ToJSON())
}
