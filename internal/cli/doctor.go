package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Atiwari330/asana-agent/internal/config"
	"github.com/Atiwari330/asana-agent/internal/registry"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check asana-agent installation health",
	Long:  `Runs diagnostic checks on the asana-agent installation and reports pass/fail for each component.`,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	agentHome := filepath.Join(home, ".asana-agent")
	passed := 0
	failed := 0

	check := func(name string, ok bool, detail string) {
		if ok {
			fmt.Printf("  ✓ %s\n", name)
			passed++
		} else {
			fmt.Printf("  ✗ %s — %s\n", name, detail)
			failed++
		}
	}

	// Global installation
	fmt.Println("Global installation:")
	check("~/.asana-agent/ directory", exists(agentHome), "run: asana-agent init --global")
	check("~/.asana-agent/config.yaml", exists(filepath.Join(agentHome, "config.yaml")), "run: asana-agent init --global")

	// Config and token
	cfg, cfgErr := config.Load()

	fmt.Println()
	fmt.Println("Configuration:")
	if cfgErr != nil {
		check("config readable", false, cfgErr.Error())
	} else {
		check("config readable", true, "")
		check(cfg.Asana.TokenEnv+" set", cfg.Token() != "", "export a personal access token in "+cfg.Asana.TokenEnv)
	}

	// Registry
	fmt.Println()
	fmt.Println("Registry:")
	if cfgErr == nil {
		regPath := cfg.RegistryPath()
		check("registry document", exists(regPath), fmt.Sprintf("not found at %s; run: asana-agent init", regPath))
		if exists(regPath) {
			store := registry.NewStore(regPath)
			reg, regErr := store.Validate()
			check("registry parses", regErr == nil, fmt.Sprintf("%v", regErr))
			if regErr == nil {
				check("registry has active projects", len(reg.ActiveProjects()) > 0, "no active projects; nothing can be created")
				check("registry has active people", len(reg.ActivePeople()) > 0, "no active people; nothing can be assigned")
			}
		}
	}

	// Asana API
	fmt.Println()
	fmt.Println("Asana API:")
	if cfgErr == nil && cfg.Token() != "" {
		check("API reachable", pingAsana(cfg), "could not reach "+cfg.Asana.BaseURL)
	} else {
		fmt.Println("  → skipped (no token)")
	}

	// Summary
	fmt.Println()
	fmt.Printf("Results: %d passed, %d failed\n", passed, failed)

	return nil
}

// pingAsana checks API reachability and credential validity with a
// lightweight authenticated request
func pingAsana(cfg *config.Config) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Asana.BaseURL+"/users/me", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+cfg.Token())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
