package fetch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packageServer serves a fixed payload at /drivers/<name> and counts GET
// requests so tests can assert transfer idempotence.
func packageServer(t *testing.T, payload []byte) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var gets atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		if r.Method == http.MethodHead {
			return
		}
		gets.Add(1)
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, &gets
}

func TestDestinationName(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"driver package", "https://us.download.nvidia.com/Windows/536.23/536.23-desktop-win10-win11-64bit-international-dch-whql.exe", "536.23-desktop-win10-win11-64bit-international-dch-whql.exe", false},
		{"query ignored", "https://example.com/a/b/tool.exe?x=1", "tool.exe", false},
		{"no file name", "https://example.com/", "", true},
		{"invalid url", "ht tp://bad", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DestinationName(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchDownloadsWhenAbsent(t *testing.T) {
	payload := []byte("driver-package-bytes")
	srv, gets := packageServer(t, payload)
	dir := t.TempDir()

	d := NewDownloader(WithRetryInterval(time.Millisecond), WithMaxAttempts(1))
	dest, err := d.Fetch(t.Context(), srv.URL+"/drivers/pkg.exe", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pkg.exe"), dest)
	assert.Equal(t, int64(1), gets.Load())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetchSkipsMatchingSize(t *testing.T) {
	payload := []byte("driver-package-bytes")
	srv, gets := packageServer(t, payload)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg.exe"), payload, 0o600))

	d := NewDownloader(WithRetryInterval(time.Millisecond), WithMaxAttempts(1))
	dest, err := d.Fetch(t.Context(), srv.URL+"/drivers/pkg.exe", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pkg.exe"), dest)
	assert.Equal(t, int64(0), gets.Load(), "matching size must skip transfer")
}

func TestFetchRedownloadsOnSizeMismatch(t *testing.T) {
	payload := []byte("driver-package-bytes")
	srv, gets := packageServer(t, payload)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg.exe"), []byte("partial"), 0o600))

	d := NewDownloader(WithRetryInterval(time.Millisecond), WithMaxAttempts(1))
	dest, err := d.Fetch(t.Context(), srv.URL+"/drivers/pkg.exe", dir)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gets.Load())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetchProbeFailureDegradesToDownload(t *testing.T) {
	payload := []byte("driver-package-bytes")
	var gets atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		gets.Add(1)
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg.exe"), payload, 0o600))

	d := NewDownloader(WithRetryInterval(time.Millisecond), WithMaxAttempts(1))
	_, err := d.Fetch(t.Context(), srv.URL+"/drivers/pkg.exe", dir)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gets.Load(), "failed probe must redownload")
}

func TestTransferRetriesTransientErrors(t *testing.T) {
	payload := []byte("driver-package-bytes")
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
			return
		}
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	d := NewDownloader(WithRetryInterval(time.Millisecond), WithMaxAttempts(3))
	dest, err := d.Fetch(t.Context(), srv.URL+"/drivers/pkg.exe", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, int64(2), attempts.Load())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestTransferExhaustsAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewDownloader(WithRetryInterval(time.Millisecond), WithMaxAttempts(2))
	_, err := d.Fetch(t.Context(), srv.URL+"/drivers/pkg.exe", t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, "after 2 attempt")
}

func TestEnsureFileIdempotent(t *testing.T) {
	payload := []byte("7zr-binary")
	srv, gets := packageServer(t, payload)
	dest := filepath.Join(t.TempDir(), "7zr.exe")

	d := NewDownloader(WithRetryInterval(time.Millisecond), WithMaxAttempts(1))
	require.NoError(t, d.EnsureFile(t.Context(), srv.URL+"/a/7zr.exe", dest))
	assert.Equal(t, int64(1), gets.Load())

	require.NoError(t, d.EnsureFile(t.Context(), srv.URL+"/a/7zr.exe", dest))
	assert.Equal(t, int64(1), gets.Load(), "existing tool must not be fetched again")
}
