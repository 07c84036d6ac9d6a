package gpu

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/NVIDIA/driver-update/pkg/defaults"
)

// CimInventory lists display adapters through PowerShell's CIM cmdlets, the
// scriptable face of WMI.
type CimInventory struct {
	// Run invokes the command; defaults to executing powershell.
	Run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func (c *CimInventory) Name() string { return "cim" }

// VideoControllers queries Win32_VideoController names, one per line.
func (c *CimInventory) VideoControllers(ctx context.Context) ([]string, error) {
	run := c.Run
	if run == nil {
		run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
			ctx, cancel := context.WithTimeout(ctx, defaults.ToolQueryTimeout)
			defer cancel()
			return exec.CommandContext(ctx, name, args...).Output()
		}
	}

	out, err := run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command",
		"Get-CimInstance Win32_VideoController | Select-Object -ExpandProperty Name")
	if err != nil {
		return nil, fmt.Errorf("failed to query video controllers: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		if n := strings.TrimSpace(line); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}
