package cli

import (
	"testing"

	"github.com/urfave/cli/v3"
)

func hasName(flag cli.Flag, name string) bool {
	for _, n := range flag.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func TestRootCmd_CommandStructure(t *testing.T) {
	cmd := rootCmd()

	if cmd.Name != "nvup" {
		t.Errorf("Name = %v, want nvup", cmd.Name)
	}

	if cmd.Usage == "" {
		t.Error("Usage should not be empty")
	}

	if cmd.Description == "" {
		t.Error("Description should not be empty")
	}

	requiredFlags := []string{"clean", "dir", "log-level", "no-log-file", "catalog-url", "lookup-url", "details-url"}
	for _, flagName := range requiredFlags {
		found := false
		for _, flag := range cmd.Flags {
			if hasName(flag, flagName) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("required flag %q not found", flagName)
		}
	}

	if cmd.Action == nil {
		t.Error("Action should not be nil")
	}
}
