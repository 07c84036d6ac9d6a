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

package defaults

import "time"

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for API requests.
	// Bulk package downloads use their own unbounded client and rely on
	// context cancellation instead.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPProbeTimeout is the timeout for the header-only size probe that
	// precedes a package download.
	HTTPProbeTimeout = 10 * time.Second
)

// Download behavior.
const (
	// DownloadRetryInterval is the pacing between transient-failure retry
	// attempts of the bulk package transfer.
	DownloadRetryInterval = 5 * time.Second
)

// Child process timeouts for external tool invocations.
const (
	// ToolQueryTimeout bounds short diagnostic queries (nvidia-smi,
	// hardware inventory listing).
	ToolQueryTimeout = 15 * time.Second

	// ExtractTimeout bounds archive extraction of the driver package.
	ExtractTimeout = 5 * time.Minute
)
