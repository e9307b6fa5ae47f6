package httputil

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const problemTypeBase = "https://inkpost.dev/problems/"

// RespondJSON writes data as JSON with the given status. The body is
// encoded before headers go out so an encoding failure can still become a
// 500. HTML is not escaped: rendered sections travel as JSON strings.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("failed to encode response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// Problem is an RFC 7807 error body. Extra members are written at the top
// level next to the standard ones.
type Problem struct {
	Type      string
	Title     string
	Status    int
	Detail    string
	Instance  string
	RequestID string
	Extra     map[string]interface{}
}

// NewProblem builds the problem for a failed request. Instance is the
// request path and RequestID the id assigned by the RequestID middleware.
func NewProblem(r *http.Request, status int, detail string) Problem {
	p := Problem{
		Type:   problemType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
	if r != nil {
		p.Instance = r.URL.Path
		p.RequestID = GetRequestID(r)
	}
	return p
}

// MarshalJSON flattens Extra into the top-level object.
func (p Problem) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Extra)+6)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	if p.RequestID != "" {
		m["requestId"] = p.RequestID
	}
	return json.Marshal(m)
}

// WriteProblem writes p with its own status.
func WriteProblem(w http.ResponseWriter, p Problem) {
	payload, err := json.Marshal(p)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	w.Write(payload)
}

// RespondError writes a problem response for r.
func RespondError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	WriteProblem(w, NewProblem(r, status, detail))
}

// problemType names the problem by status class. Statuses without a name
// use "about:blank", which RFC 7807 reserves for "see the title".
func problemType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return problemTypeBase + "invalid-request"
	case http.StatusUnauthorized:
		return problemTypeBase + "unauthenticated"
	case http.StatusForbidden:
		return problemTypeBase + "forbidden"
	case http.StatusNotFound:
		return problemTypeBase + "not-found"
	case http.StatusConflict:
		return problemTypeBase + "conflict"
	case http.StatusRequestEntityTooLarge:
		return problemTypeBase + "too-large"
	case http.StatusInternalServerError:
		return problemTypeBase + "internal"
	default:
		return "about:blank"
	}
}
