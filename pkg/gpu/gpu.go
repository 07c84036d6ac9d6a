/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package gpu

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/NVIDIA/driver-update/pkg/errors"
	"github.com/NVIDIA/driver-update/pkg/nvapi"
)

const (
	// brandToken filters hardware inventory entries to NVIDIA adapters.
	brandToken = "NVIDIA"
	// brandPrefix is stripped when matching inventory names against the
	// vendor catalog, which lists models without the brand.
	brandPrefix = "NVIDIA "
)

// Device is the canonical GPU identity: the display name plus the two vendor
// catalog keys needed to query driver availability. Enrichment produces a new
// value; a Device is never mutated in place.
type Device struct {
	Name     string
	ParentID string
	Value    string
}

// Valid reports whether the identity names a GPU at all.
func (d Device) Valid() bool {
	return d.Name != ""
}

// Downloadable reports whether both catalog keys are populated, the
// precondition for a driver lookup.
func (d Device) Downloadable() bool {
	return d.ParentID != "" && d.Value != ""
}

// NormalizeName strips the leading brand prefix from an inventory name.
func NormalizeName(name string) string {
	return strings.TrimPrefix(name, brandPrefix)
}

// Inventory is a local hardware inventory source listing display adapter
// names.
type Inventory interface {
	Name() string
	VideoControllers(ctx context.Context) ([]string, error)
}

// SelectFunc is the pluggable selection provider for the interactive catalog
// fallback. It receives the candidate names and returns the chosen one, or
// false when the user cancels. Headless implementations (pick-first,
// read-from-stdin) can substitute in tests and automation.
type SelectFunc func(names []string) (string, bool)

// Cataloger supplies the vendor GPU catalog.
type Cataloger interface {
	Catalog(ctx context.Context) ([]nvapi.CatalogEntry, error)
}

// Identifier resolves the GPU identity: automatic detection through the
// inventory sources in order, falling back to an interactive pick from the
// vendor catalog.
type Identifier struct {
	Inventories []Inventory
	Select      SelectFunc
	Catalog     Cataloger
}

// Identify produces the GPU identity or a GPU_NOT_FOUND failure. "Not found"
// is an expected outcome here, never a panic: every inventory or catalog
// problem degrades to the next step and ultimately to a failure result.
func (i *Identifier) Identify(ctx context.Context) (Device, error) {
	for _, inv := range i.Inventories {
		names, err := inv.VideoControllers(ctx)
		if err != nil {
			slog.Debug("inventory source failed", "source", inv.Name(), "error", err)
			continue
		}
		for _, n := range names {
			if strings.Contains(strings.ToUpper(n), brandToken) {
				slog.Info("detected GPU", "source", inv.Name(), "name", n)
				return Device{Name: n}, nil
			}
		}
	}

	slog.Info("no GPU detected locally, falling back to vendor catalog selection")
	return i.identifyInteractive(ctx)
}

func (i *Identifier) identifyInteractive(ctx context.Context) (Device, error) {
	if i.Catalog == nil || i.Select == nil {
		return Device{}, errors.New(errors.ErrCodeGPUNotFound, "no supported GPU detected")
	}

	entries, err := i.Catalog.Catalog(ctx)
	if err != nil {
		return Device{}, errors.Wrap(errors.ErrCodeGPUNotFound, "failed to fetch GPU catalog for selection", err)
	}

	choice, ok := i.Select(catalogNames(entries))
	if !ok {
		return Device{}, errors.New(errors.ErrCodeGPUNotFound, "GPU selection cancelled")
	}

	for _, e := range entries {
		if e.Name == choice {
			return Device{Name: e.Name, ParentID: e.ParentID, Value: e.Value}, nil
		}
	}
	return Device{}, errors.Newf(errors.ErrCodeGPUNotFound, "selected GPU %q has no catalog entry", choice)
}

// Enrich fills in the catalog keys for an identity that lacks them, matching
// the raw or brand-normalized name against the vendor catalog. The input is
// returned unchanged when already downloadable.
func (i *Identifier) Enrich(ctx context.Context, d Device) (Device, error) {
	if d.Downloadable() {
		return d, nil
	}

	entries, err := i.Catalog.Catalog(ctx)
	if err != nil {
		return Device{}, errors.Wrap(errors.ErrCodeGPUNotFound, "failed to fetch GPU catalog", err)
	}

	raw, normalized := d.Name, NormalizeName(d.Name)
	for _, e := range entries {
		if e.Name == raw || e.Name == normalized {
			return Device{Name: d.Name, ParentID: e.ParentID, Value: e.Value}, nil
		}
	}
	return Device{}, errors.New(errors.ErrCodeGPUNotFound, "no matching GPU in vendor database")
}

// catalogNames returns the deduplicated catalog names sorted
// case-insensitively for presentation.
func catalogNames(entries []nvapi.CatalogEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Name]; ok || e.Name == "" {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}

	collate.New(language.English, collate.IgnoreCase).SortStrings(names)
	return names
}
