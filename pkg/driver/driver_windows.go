//go:build windows

package driver

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const (
	// nvidia-smi ships inside the driver store on modern drivers and in
	// System32 on older ones.
	driverStoreGlob = `C:\Windows\System32\DriverStore\FileRepository\nv*\nvidia-smi.exe`

	smiPathSystem32 = `C:\Windows\System32\nvidia-smi.exe`
	smiPathLegacy   = `C:\Program Files\NVIDIA Corporation\NVSMI\nvidia-smi.exe`

	// Display adapter device class key holding per-adapter driver metadata.
	displayClassKey = `SYSTEM\CurrentControlSet\Control\Class\{4d36e968-e325-11ce-bfc1-08002be10318}`
)

// NewResolver builds the production resolver: nvidia-smi first, registry
// driver metadata second, Unknown as the terminal fallback.
func NewResolver() *Resolver {
	return &Resolver{
		Strategies: []Strategy{
			&SmiStrategy{
				Glob:  driverStoreGlob,
				Paths: []string{smiPathSystem32, smiPathLegacy},
			},
			&MetadataStrategy{Source: &registryMetadata{}},
		},
	}
}

// registryMetadata reads the display adapter DriverVersion value from the
// device class registry key, scanning adapter subkeys for the NVIDIA one.
type registryMetadata struct{}

func (registryMetadata) DriverVersion() (string, error) {
	class, err := registry.OpenKey(registry.LOCAL_MACHINE, displayClassKey, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return "", fmt.Errorf("failed to open display class key: %w", err)
	}
	defer class.Close()

	subkeys, err := class.ReadSubKeyNames(-1)
	if err != nil {
		return "", fmt.Errorf("failed to list display adapters: %w", err)
	}

	for _, name := range subkeys {
		adapter, err := registry.OpenKey(registry.LOCAL_MACHINE, displayClassKey+`\`+name, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		provider, _, _ := adapter.GetStringValue("ProviderName")
		version, _, verErr := adapter.GetStringValue("DriverVersion")
		adapter.Close()

		if verErr == nil && provider == "NVIDIA" && version != "" {
			return version, nil
		}
	}

	return "", fmt.Errorf("no NVIDIA display adapter metadata found")
}
