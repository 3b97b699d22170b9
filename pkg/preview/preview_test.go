package preview

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDevices(t *testing.T) {
	s := NewServer(0, []string{"830112071467", "830112071329"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/devices", nil)
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status string   `json:"status"`
		Data   []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, []string{"830112071467", "830112071329"}, body.Data)
}

func TestDeviceVideoUnknownSerial(t *testing.T) {
	s := NewServer(0, []string{"830112071467"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/devices/nope/video", nil)
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown device")
}

func TestNoRoute(t *testing.T) {
	s := NewServer(0, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nothing/here", nil)
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublishKeepsLatestFrame(t *testing.T) {
	s := NewServer(0, []string{"A"})

	s.Publish("A", []byte{1})
	s.Publish("A", []byte{2})

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Equal(t, []byte{2}, s.latest["A"])
	assert.Equal(t, uint64(2), s.seq["A"])
}
