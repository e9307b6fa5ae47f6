package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	req := WithRequestID(httptest.NewRequest(http.MethodGet, "/api/blogs/missing", nil), "req-1")
	rec := httptest.NewRecorder()

	RespondError(rec, req, http.StatusNotFound, "blog not found: missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body["title"])
	assert.Equal(t, float64(404), body["status"])
	assert.Equal(t, "blog not found: missing", body["detail"])
	assert.Equal(t, "/api/blogs/missing", body["instance"])
	assert.Equal(t, "req-1", body["requestId"])
	assert.Contains(t, body["type"], "not-found")
}

func TestProblem_ExtraAtTopLevel(t *testing.T) {
	p := NewProblem(httptest.NewRequest(http.MethodPost, "/api/blogs", nil), http.StatusConflict, "slug taken")
	p.Extra = map[string]interface{}{"resource_type": "blog", "resource_id": "hello"}

	rec := httptest.NewRecorder()
	WriteProblem(rec, p)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "blog", body["resource_type"])
	assert.Equal(t, "hello", body["resource_id"])
	assert.Equal(t, "/api/blogs", body["instance"])
	assert.NotContains(t, body, "requestId", "no id outside the middleware")
}

func TestProblem_UnnamedStatus(t *testing.T) {
	p := NewProblem(nil, http.StatusTeapot, "")
	assert.Equal(t, "about:blank", p.Type)
	assert.Empty(t, p.Instance)
}

func TestRespondJSON_KeepsHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]string{"html": `<p class="section">a & b</p>`})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `<p class=\"section\">a & b</p>`)
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]interface{}{"bad": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
