package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    map[string]any
		wantErr bool
	}{
		{name: "object", body: `{"name":"Le Guin","year":1969}`, want: map[string]any{"name": "Le Guin", "year": json.Number("1969")}},
		{name: "empty body", body: "", want: map[string]any{}},
		{name: "whitespace body", body: "  \n", want: map[string]any{}},
		{name: "trailing comma", body: `{"name":"x",}`, wantErr: true},
		{name: "array", body: `[1,2]`, wantErr: true},
		{name: "scalar", body: `"name"`, wantErr: true},
		{name: "two values", body: `{} {}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			got, err := ReadJSONObject(r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadJSONObject_NoBody(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	got, err := ReadJSONObject(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.9:52100"
	assert.Equal(t, "203.0.113.9", ClientIP(r))

	r.RemoteAddr = "203.0.113.9"
	assert.Equal(t, "203.0.113.9", ClientIP(r))
}
