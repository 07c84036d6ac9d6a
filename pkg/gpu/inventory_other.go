//go:build !windows

package gpu

// DefaultInventories off Windows only carries the CIM source, which will
// fail on hosts without PowerShell and push identification to the catalog
// fallback.
func DefaultInventories() []Inventory {
	return []Inventory{&CimInventory{}}
}
