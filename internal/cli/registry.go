package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Atiwari330/asana-agent/internal/config"
	"github.com/Atiwari330/asana-agent/internal/registry"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and validate the registry allowlist",
}

var registryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List active projects and people in the registry",
	RunE:  runRegistryShow,
}

var registryCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the registry document and report schema problems",
	RunE:  runRegistryCheck,
}

func init() {
	registryCmd.AddCommand(registryShowCmd)
	registryCmd.AddCommand(registryCheckCmd)
}

func runRegistryShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store := registry.NewStore(cfg.RegistryPath())
	reg := store.Load()

	if reg.Empty() {
		fmt.Printf("Registry at %s is empty or could not be loaded.\n", cfg.RegistryPath())
		fmt.Println("Run: asana-agent registry check")
		return nil
	}

	fmt.Printf("Registry: %s (version %d)\n\n", cfg.RegistryPath(), reg.Version)

	fmt.Println("Projects:")
	for _, p := range reg.Projects {
		marker := "  "
		if !p.Active {
			marker = "  [inactive] "
		}
		line := fmt.Sprintf("%s%s", marker, p.Name)
		if len(p.Aliases) > 0 {
			line += fmt.Sprintf(" (%s)", strings.Join(p.Aliases, ", "))
		}
		fmt.Println(line)
		if verbose {
			fmt.Printf("    id: %s, assignees: %s\n", p.ID, strings.Join(p.AllowedAssignees, ", "))
		}
	}

	fmt.Println()
	fmt.Println("People:")
	for _, p := range reg.People {
		marker := "  "
		if !p.Active {
			marker = "  [inactive] "
		}
		line := fmt.Sprintf("%s%s <%s>", marker, p.Name, p.Email)
		if len(p.Aliases) > 0 {
			line += fmt.Sprintf(" (%s)", strings.Join(p.Aliases, ", "))
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Printf("Policy: on_unknown_project=%s, on_unknown_person=%s\n",
		reg.Policy.OnUnknownProject, reg.Policy.OnUnknownPerson)
	return nil
}

func runRegistryCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store := registry.NewStore(cfg.RegistryPath())
	reg, err := store.Validate()
	if err != nil {
		color.Red("✗ %s", err)
		fmt.Println("The agent will run with an empty reject-everything registry until this is fixed.")
		return fmt.Errorf("registry invalid")
	}

	color.Green("✓ registry is valid")
	fmt.Printf("  %d projects (%d active), %d people (%d active)\n",
		len(reg.Projects), len(reg.ActiveProjects()),
		len(reg.People), len(reg.ActivePeople()))

	// Soft warnings: entries that will never resolve to a created task
	for _, p := range reg.ActiveProjects() {
		if len(p.AllowedAssignees) == 0 {
			color.Yellow("  ! project %q has no allowed assignees; no task can be created in it", p.Name)
		}
		if p.ID == "" {
			color.Yellow("  ! project %q has no Asana GID", p.Name)
		}
	}
	return nil
}
