package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Atiwari330/asana-agent/internal/agent"
	"github.com/Atiwari330/asana-agent/internal/config"
	"github.com/Atiwari330/asana-agent/internal/ledger"
)

var (
	createProject  string
	createAssignee string
	createTitle    string
	createNotes    string
	createDue      string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a single Asana task through the registry pipeline",
	Long: `Resolves the project and assignee against the registry, applies the
project's title rules and notes template, normalizes the due date, and
creates the task in Asana.`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createProject, "project", "p", "", "Project name, alias, or routing keyword (required)")
	createCmd.Flags().StringVarP(&createAssignee, "assignee", "a", "", "Assignee email, name, or alias (required)")
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Task title (required)")
	createCmd.Flags().StringVar(&createNotes, "notes", "", "Task notes")
	createCmd.Flags().StringVar(&createDue, "due", "", "Due date phrase (e.g. tomorrow, next friday, in 5 days)")
	createCmd.MarkFlagRequired("project")
	createCmd.MarkFlagRequired("assignee")
	createCmd.MarkFlagRequired("title")
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	orch, _ := buildPipeline(cfg)

	result := orch.CreateTask(context.Background(), &agent.Request{
		Project:  createProject,
		Assignee: createAssignee,
		Title:    createTitle,
		Notes:    createNotes,
		DueOn:    createDue,
	})

	if !result.Success {
		color.Red("✗ %s", result.Error)
		return fmt.Errorf("task not created")
	}

	if store := openLedger(cfg); store != nil {
		defer store.Close()
		store.Record(&ledger.Entry{
			TaskGID:   result.TaskID,
			Permalink: result.Permalink,
			Project:   result.Details.Project,
			Assignee:  result.Details.Assignee,
			Title:     result.Details.Title,
			DueOn:     result.Details.DueDate,
		})
	}

	color.Green("✓ %s", result.Message)
	fmt.Printf("  %s\n", result.Permalink)
	if verbose {
		fmt.Printf("  task id:  %s\n", result.TaskID)
		fmt.Printf("  project:  %s\n", result.Details.Project)
		fmt.Printf("  assignee: %s\n", result.Details.Assignee)
		fmt.Printf("  due:      %s\n", result.Details.DueDate)
	}
	return nil
}
