package fetch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpReaderRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, HttpReaderUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	reader := NewHttpReader()
	data, err := reader.Read(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestHttpReaderReadErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	reader := NewHttpReader()

	_, err := reader.Read(t.Context(), "")
	assert.Error(t, err)

	_, err = reader.Read(t.Context(), srv.URL)
	assert.ErrorContains(t, err, "status")

	_, err = reader.Read(t.Context(), "http://127.0.0.1:1/unreachable")
	assert.Error(t, err)
}

func TestHttpReaderUserAgentOption(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	reader := NewHttpReader(WithUserAgent("custom/2.0"))
	_, err := reader.Read(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "custom/2.0", got)
}

func TestProbeSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("Content-Length", "42")
	}))
	defer srv.Close()

	reader := NewHttpReader()
	size, err := reader.ProbeSize(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, int64(42), size)
}

func TestProbeSizeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	reader := NewHttpReader()

	_, err := reader.ProbeSize(t.Context(), srv.URL)
	assert.ErrorContains(t, err, "status")

	_, err = reader.ProbeSize(t.Context(), "http://127.0.0.1:1/unreachable")
	assert.Error(t, err)
}
