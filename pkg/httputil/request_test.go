package httputil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid JSON",
			body:        `{"path": "docs/install.md"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			body:        `{invalid}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/test", bytes.NewBufferString(tt.body))
			var dest map[string]string

			err := ParseJSON(req, &dest)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "docs/install.md", dest["path"])
			}
		})
	}
}

func TestParseJSONOrError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expectOK   bool
		expectCode int
	}{
		{
			name:     "valid JSON",
			body:     `{"path": "docs/install.md"}`,
			expectOK: true,
		},
		{
			name:       "invalid JSON",
			body:       `{invalid}`,
			expectOK:   false,
			expectCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/test", bytes.NewBufferString(tt.body))
			var dest map[string]string

			ok := ParseJSONOrError(w, req, &dest)

			assert.Equal(t, tt.expectOK, ok)
			if !tt.expectOK {
				assert.Equal(t, tt.expectCode, w.Code)
			}
		})
	}
}

func TestParsePathString(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/rules/CL001", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "CL001"})

	val, err := ParsePathString(req, "id")

	assert.NoError(t, err)
	assert.Equal(t, "CL001", val)
}

func TestParsePathString_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/rules/", nil)
	req = mux.SetURLVars(req, map[string]string{})

	_, err := ParsePathString(req, "id")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing path parameter: id")
}

func TestParsePathStringOrError(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/reports/6b9f1f2e", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "6b9f1f2e"})

	val, ok := ParsePathStringOrError(w, req, "id")

	assert.True(t, ok)
	assert.Equal(t, "6b9f1f2e", val)
}

func TestParsePathStringOrError_Missing(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/reports/", nil)
	req = mux.SetURLVars(req, map[string]string{})

	val, ok := ParsePathStringOrError(w, req, "id")

	assert.False(t, ok)
	assert.Empty(t, val)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/test?limit=50", nil)

	val, err := ParseQueryInt(req, "limit", 20)

	assert.NoError(t, err)
	assert.Equal(t, 50, val)
}

func TestParseQueryInt_Default(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	val, err := ParseQueryInt(req, "limit", 20)

	assert.NoError(t, err)
	assert.Equal(t, 20, val)
}

func TestParseQueryInt_Invalid(t *testing.T) {
	req := httptest.NewRequest("GET", "/test?limit=abc", nil)

	_, err := ParseQueryInt(req, "limit", 20)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid integer for query param limit")
}

func TestParseQueryString(t *testing.T) {
	req := httptest.NewRequest("GET", "/test?path=docs/install.md", nil)

	val := ParseQueryString(req, "path", "")

	assert.Equal(t, "docs/install.md", val)
}

func TestParseQueryString_Default(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	val := ParseQueryString(req, "filter", "all")

	assert.Equal(t, "all", val)
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest("GET", "/test?verbose=true", nil)

	val, err := ParseQueryBool(req, "verbose", false)

	assert.NoError(t, err)
	assert.True(t, val)
}

func TestParseQueryTime(t *testing.T) {
	req := httptest.NewRequest("GET", "/test?since=2024-06-01T12:00:00Z", nil)

	val, err := ParseQueryTime(req, "since", time.Time{})

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), val)
}

func TestParseQueryTime_Default(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	fallback := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	val, err := ParseQueryTime(req, "since", fallback)

	assert.NoError(t, err)
	assert.Equal(t, fallback, val)
}

func TestParseQueryTime_Invalid(t *testing.T) {
	req := httptest.NewRequest("GET", "/test?since=yesterday", nil)

	_, err := ParseQueryTime(req, "since", time.Time{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timestamp for query param since")
}

func TestRequireNonEmpty(t *testing.T) {
	w := httptest.NewRecorder()

	ok := RequireNonEmpty(w, "", "path")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "path is required")
}

func TestRequirePositive(t *testing.T) {
	w := httptest.NewRecorder()

	ok := RequirePositive(w, 0, "limit")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit must be positive")
}

func TestValidateAll(t *testing.T) {
	w := httptest.NewRecorder()

	validators := []Validator{
		func() (bool, string) { return true, "" },
		func() (bool, string) { return false, "validation failed" },
		func() (bool, string) { return true, "" },
	}

	ok := ValidateAll(w, validators...)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
}

func TestValidateAll_Success(t *testing.T) {
	w := httptest.NewRecorder()

	validators := []Validator{
		func() (bool, string) { return true, "" },
		func() (bool, string) { return true, "" },
	}

	ok := ValidateAll(w, validators...)

	assert.True(t, ok)
}

func TestGetPathVars(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/reports/6b9f1f2e", nil)
	req = mux.SetURLVars(req, map[string]string{
		"id": "6b9f1f2e",
	})

	vars := GetPathVars(req)

	assert.Equal(t, "6b9f1f2e", vars["id"])
}

// TestParseJSONComplexStruct tests parsing into a complex struct
func TestParseJSONComplexStruct(t *testing.T) {
	type LintRequest struct {
		Path    string `json:"path"`
		Content string `json:"content"`
		Persist bool   `json:"persist"`
	}

	body := `{"path":"docs/install.md","content":"# Install\n","persist":true}`
	req := httptest.NewRequest("POST", "/api/v1/lint", bytes.NewBufferString(body))

	var lintReq LintRequest
	err := ParseJSON(req, &lintReq)

	assert.NoError(t, err)
	assert.Equal(t, "docs/install.md", lintReq.Path)
	assert.Equal(t, "# Install\n", lintReq.Content)
	assert.True(t, lintReq.Persist)
}

// TestParseJSONEmptyBody tests parsing an empty body
func TestParseJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", bytes.NewBufferString(""))

	var dest map[string]string
	err := ParseJSON(req, &dest)

	assert.Error(t, err)
}

// BenchmarkWriteJSON benchmarks the WriteJSON function
func BenchmarkWriteJSON(b *testing.B) {
	data := map[string]string{"message": "benchmark"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		WriteJSON(w, http.StatusOK, data)
	}
}

// BenchmarkParseJSON benchmarks the ParseJSON function
func BenchmarkParseJSON(b *testing.B) {
	body, _ := json.Marshal(map[string]string{"path": "docs/install.md"})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest("POST", "/test", bytes.NewBuffer(body))
		var dest map[string]string
		ParseJSON(req, &dest)
	}
}
