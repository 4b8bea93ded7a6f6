package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Atiwari330/asana-agent/internal/config"
)

var initGlobal bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize asana-agent configuration",
	Long: `Writes a default config and a commented starter registry. Without
--global this initializes the current project's .asana-agent directory;
with --global it initializes ~/.asana-agent.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "Initialize the global ~/.asana-agent directory")
}

func runInit(cmd *cobra.Command, args []string) error {
	var dir string
	if initGlobal {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".asana-agent")
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = filepath.Join(cwd, ".asana-agent")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, "config.yaml")
	if exists(configPath) {
		fmt.Printf("  config.yaml already exists, skipping\n")
	} else {
		writeConfig := config.WriteProjectDefault
		if initGlobal {
			writeConfig = config.WriteDefault
		}
		if err := writeConfig(configPath); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("  wrote %s\n", configPath)
	}

	registryPath := filepath.Join(dir, "registry.yaml")
	if exists(registryPath) {
		fmt.Printf("  registry.yaml already exists, skipping\n")
	} else {
		if err := config.WriteRegistryStarter(registryPath); err != nil {
			return fmt.Errorf("failed to write registry: %w", err)
		}
		fmt.Printf("  wrote %s\n", registryPath)
	}

	color.Green("✓ initialized %s", dir)
	fmt.Println("Next: fill in the registry allowlist, then run: asana-agent doctor")
	return nil
}
