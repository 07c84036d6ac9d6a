/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package nvapi

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/NVIDIA/driver-update/pkg/driver"
	"github.com/NVIDIA/driver-update/pkg/errors"
	"github.com/NVIDIA/driver-update/pkg/fetch"
	"github.com/NVIDIA/driver-update/pkg/winenv"
)

// Production endpoints.
const (
	DefaultCatalogURL = "https://www.nvidia.com/Download/API/lookupValueSearch.aspx"
	DefaultLookupURL  = "https://www.nvidia.com/Download/processDriver.aspx"
	DefaultDetailsURL = "https://www.nvidia.com/services/com.nvidia.services/AJAXDriverService.php"
)

// gpuCatalogTypeID selects the GPU product list in the lookup value search.
const gpuCatalogTypeID = "3"

// lookupResult matches the redirect-like body of a successful driver lookup,
// capturing the numeric download result id.
var lookupResult = regexp.MustCompile(`driverResults\.aspx/(\d+)/en-us`)

// CatalogEntry is one GPU model tuple from the vendor catalog: the display
// name plus the two opaque keys (product series and product id) needed to
// query driver availability.
type CatalogEntry struct {
	ParentID string `xml:"ParentID,attr"`
	Name     string `xml:"Name"`
	Value    string `xml:"Value"`
}

type lookupValueSearch struct {
	Entries []CatalogEntry `xml:"LookupValues>LookupValue"`
}

// Driver describes the newest driver matching a lookup.
type Driver struct {
	// Version is the public version token, or driver.VersionUnknown when
	// the download URL carries no recognizable token.
	Version string
	// DownloadURL is the direct package download location.
	DownloadURL string
	// DownloadID is the numeric id of the lookup result.
	DownloadID string
}

// ClientOption defines a configuration option for Client.
type ClientOption func(*Client)

// WithCatalogURL overrides the catalog endpoint.
func WithCatalogURL(u string) ClientOption {
	return func(c *Client) { c.catalogURL = u }
}

// WithLookupURL overrides the driver lookup endpoint.
func WithLookupURL(u string) ClientOption {
	return func(c *Client) { c.lookupURL = u }
}

// WithDetailsURL overrides the download details endpoint.
func WithDetailsURL(u string) ClientOption {
	return func(c *Client) { c.detailsURL = u }
}

// WithReader substitutes the HTTP reader.
func WithReader(r *fetch.HttpReader) ClientOption {
	return func(c *Client) { c.reader = r }
}

// Client queries the vendor driver catalog and lookup services.
type Client struct {
	reader     *fetch.HttpReader
	catalogURL string
	lookupURL  string
	detailsURL string
}

// NewClient creates a vendor API client against the production endpoints
// unless overridden.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		catalogURL: DefaultCatalogURL,
		lookupURL:  DefaultLookupURL,
		detailsURL: DefaultDetailsURL,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.reader == nil {
		c.reader = fetch.NewHttpReader()
	}
	return c
}

// Catalog fetches the full GPU model catalog.
func (c *Client) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	u := fmt.Sprintf("%s?TypeID=%s", c.catalogURL, gpuCatalogTypeID)

	data, err := c.reader.Read(ctx, u)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeVendorAPI, "failed to fetch GPU catalog", err)
	}

	var result lookupValueSearch
	if err := xml.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(errors.ErrCodeVendorAPI, "failed to parse GPU catalog", err)
	}

	slog.Debug("fetched GPU catalog", "entries", len(result.Entries))
	return result.Entries, nil
}

// LatestDriver resolves the newest driver for the given catalog keys and OS
// family. The returned Version degrades to driver.VersionUnknown when the
// download URL carries no version token; a missing download URL is an error.
func (c *Client) LatestDriver(ctx context.Context, parentID, value string, family winenv.OSFamily) (*Driver, error) {
	id, err := c.lookupDownloadID(ctx, parentID, value, family)
	if err != nil {
		return nil, err
	}

	dl, err := c.downloadURL(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		Version:     driver.VersionFromURL(dl),
		DownloadURL: dl,
		DownloadID:  id,
	}
	slog.Info("resolved latest driver", "version", d.Version, "id", d.DownloadID)
	return d, nil
}

func (c *Client) lookupDownloadID(ctx context.Context, parentID, value string, family winenv.OSFamily) (string, error) {
	q := url.Values{}
	q.Set("psid", parentID)
	q.Set("pfid", value)
	q.Set("osid", fmt.Sprintf("%d", family))
	q.Set("rpf", "1")
	q.Set("lid", "1")

	body, err := c.reader.Read(ctx, c.lookupURL+"?"+q.Encode())
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeVendorAPI, "driver lookup request failed", err)
	}

	m := lookupResult.FindSubmatch(body)
	if m == nil {
		return "", errors.New(errors.ErrCodeVendorAPI, "failed to parse driver information")
	}
	return string(m[1]), nil
}

type downloadDetails struct {
	IDS []struct {
		DownloadInfo struct {
			DownloadURL string `json:"DownloadURL"`
		} `json:"downloadInfo"`
	} `json:"IDS"`
}

func (c *Client) downloadURL(ctx context.Context, id string) (string, error) {
	q := url.Values{}
	q.Set("func", "GetDownloadDetails")
	q.Set("downloadInfo[downloadID]", id)

	body, err := c.reader.Read(ctx, c.detailsURL+"?"+q.Encode())
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeVendorAPI, "download details request failed", err)
	}

	var details downloadDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return "", errors.Wrap(errors.ErrCodeVendorAPI, "failed to parse download details", err)
	}

	if len(details.IDS) == 0 || details.IDS[0].DownloadInfo.DownloadURL == "" {
		return "", errors.New(errors.ErrCodeVendorAPI, "failed to get download URL")
	}
	return details.IDS[0].DownloadInfo.DownloadURL, nil
}
