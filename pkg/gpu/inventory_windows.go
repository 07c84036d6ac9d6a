//go:build windows

package gpu

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// Display adapter device class key; each numbered subkey is one adapter.
const displayClassKey = `SYSTEM\CurrentControlSet\Control\Class\{4d36e968-e325-11ce-bfc1-08002be10318}`

// RegistryInventory lists display adapters from the device class registry
// key. It needs no external process, so it is tried before the CIM source.
type RegistryInventory struct{}

func (RegistryInventory) Name() string { return "registry" }

func (RegistryInventory) VideoControllers(_ context.Context) ([]string, error) {
	class, err := registry.OpenKey(registry.LOCAL_MACHINE, displayClassKey, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, fmt.Errorf("failed to open display class key: %w", err)
	}
	defer class.Close()

	subkeys, err := class.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to list display adapters: %w", err)
	}

	var names []string
	for _, name := range subkeys {
		adapter, err := registry.OpenKey(registry.LOCAL_MACHINE, displayClassKey+`\`+name, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		desc, _, descErr := adapter.GetStringValue("DriverDesc")
		adapter.Close()
		if descErr == nil && desc != "" {
			names = append(names, desc)
		}
	}
	return names, nil
}

// DefaultInventories returns the production inventory sources in detection
// order.
func DefaultInventories() []Inventory {
	return []Inventory{RegistryInventory{}, &CimInventory{}}
}
