package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// MaxJSONBodyBytes limits JSON request bodies.
const MaxJSONBodyBytes = 10 << 20

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size to prevent abuse and provides clear error messages.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	// Requires w for a proper 413 response
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// ReadJSON reads the request body as raw JSON, for handlers that need the
// bytes themselves (patches).
func ReadJSON(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := ParseJSON(w, r, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
