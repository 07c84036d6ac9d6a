// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/driver-update/pkg/defaults"
)

// DownloaderOption defines a configuration option for Downloader.
type DownloaderOption func(*Downloader)

// WithRetryInterval overrides the pacing between transfer retry attempts.
func WithRetryInterval(interval time.Duration) DownloaderOption {
	return func(d *Downloader) {
		d.retryInterval = interval
	}
}

// WithMaxAttempts bounds the number of transfer attempts. Zero means the
// transfer retries until the context is done.
func WithMaxAttempts(attempts int) DownloaderOption {
	return func(d *Downloader) {
		d.maxAttempts = attempts
	}
}

// WithReader substitutes the HTTP reader used for probes and transfers.
func WithReader(reader *HttpReader) DownloaderOption {
	return func(d *Downloader) {
		d.reader = reader
	}
}

// Downloader fetches files idempotently: a local file whose size matches the
// remote Content-Length is not transferred again.
type Downloader struct {
	reader        *HttpReader
	retryInterval time.Duration
	maxAttempts   int
}

// NewDownloader creates a Downloader. The default HTTP reader carries no
// total timeout since driver packages are large; cancellation comes from the
// caller's context.
func NewDownloader(options ...DownloaderOption) *Downloader {
	d := &Downloader{
		retryInterval: defaults.DownloadRetryInterval,
	}
	for _, opt := range options {
		opt(d)
	}
	if d.reader == nil {
		d.reader = NewHttpReader(WithTotalTimeout(0))
	}
	return d
}

// DestinationName derives the local file name from the URL's final path
// segment.
func DestinationName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid download url %s: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("download url %s has no file name", rawURL)
	}
	return name, nil
}

// Fetch downloads rawURL into dir and returns the destination path. When a
// local file of the expected size already exists the transfer is skipped.
// A failed size probe degrades to an unconditional download.
func (d *Downloader) Fetch(ctx context.Context, rawURL, dir string) (string, error) {
	name, err := DestinationName(rawURL)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(dir, name)

	expected, err := d.reader.ProbeSize(ctx, rawURL)
	if err != nil {
		slog.Warn("size probe failed, downloading unconditionally", "url", rawURL, "error", err)
	} else if fi, statErr := os.Stat(dest); statErr == nil && fi.Size() == expected {
		slog.Info("already downloaded", "file", dest, "size", expected)
		return dest, nil
	}

	if err := d.transfer(ctx, rawURL, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// EnsureFile downloads rawURL to dest unless dest already exists. Used for
// helper tool binaries whose content never changes at a given URL.
func (d *Downloader) EnsureFile(ctx context.Context, rawURL, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		slog.Debug("file already present", "file", dest)
		return nil
	}
	return d.transfer(ctx, rawURL, dest)
}

// transfer streams the URL to dest, retrying transient failures paced by the
// configured interval. Each attempt rewrites the file from the start.
func (d *Downloader) transfer(ctx context.Context, rawURL, dest string) error {
	limiter := rate.NewLimiter(rate.Every(d.retryInterval), 1)

	var lastErr error
	for attempt := 1; d.maxAttempts == 0 || attempt <= d.maxAttempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			if lastErr != nil {
				return fmt.Errorf("download aborted after %d attempt(s): %w", attempt-1, lastErr)
			}
			return err
		}

		lastErr = d.attempt(ctx, rawURL, dest)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
		slog.Warn("download attempt failed", "url", rawURL, "attempt", attempt, "error", lastErr)
	}

	return fmt.Errorf("download failed after %d attempt(s): %w", d.maxAttempts, lastErr)
}

func (d *Downloader) attempt(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for url %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", d.reader.UserAgent)

	resp, err := d.reader.Client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed for url %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch data: status %s", resp.Status)
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", dest, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write file %s: %w", dest, err)
	}
	return f.Close()
}
