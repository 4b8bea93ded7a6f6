package testutil

import "github.com/Atiwari330/asana-agent/internal/registry"

// SampleRegistry returns a populated registry covering the resolution,
// authorization, and guidance paths used across the test suites.
func SampleRegistry() *registry.Registry {
	return &registry.Registry{
		Version: 1,
		Policy: registry.Policy{
			OnUnknownProject:  "ask",
			OnUnknownPerson:   "ask",
			OneTaskPerMessage: true,
		},
		Defaults: registry.Defaults{
			DueDaysFromNow: 3,
		},
		People: []registry.Person{
			{
				Email:   "jordan@example.com",
				Name:    "Jordan Smith",
				Aliases: []string{"me", "jordan"},
				Role:    "Revenue Operations",
				Active:  true,
			},
			{
				Email:   "priya@example.com",
				Name:    "Priya Patel",
				Aliases: []string{"pp"},
				Role:    "Customer Success",
				Active:  true,
			},
			{
				Email:  "former@example.com",
				Name:   "Former Employee",
				Active: false,
			},
		},
		Projects: []registry.Project{
			{
				ID:               "1205551234567890",
				Name:             "Revenue Operations",
				Aliases:          []string{"rev ops", "revops"},
				AllowedAssignees: []string{"jordan@example.com"},
				RoutingKeywords:  []string{"pipeline", "forecast"},
				Context: registry.ProjectContext{
					TaskGuidance: registry.TaskGuidance{
						TitleRules: []string{"Start with an action verb"},
						NotesTemplate: "Goal: {goal}\nDetails: {details}\nAcceptance criteria: {acceptance_criteria}",
					},
					Rules: []registry.Rule{
						{
							When: registry.RuleCondition{ContainsAny: []string{"urgent", "asap"}},
							Then: registry.RuleAction{AppendNote: "Flagged urgent: confirm priority with the requester."},
						},
						{
							When: registry.RuleCondition{ContainsAny: []string{"leadership", "exec"}},
							Then: registry.RuleAction{AppendNote: "Leadership visibility: loop in the VP before sending."},
						},
					},
					SLA:           registry.SLA{DefaultDueDaysFromNow: 2},
					NotesGuidance: "Created by asana-agent on request.",
				},
				Active: true,
			},
			{
				ID:               "1205559876543210",
				Name:             "Customer Success",
				Aliases:          []string{"cs"},
				AllowedAssignees: []string{"priya@example.com", "jordan@example.com"},
				RoutingKeywords:  []string{"onboarding", "renewal"},
				Defaults:         registry.ProjectDefaults{DueDaysFromNow: 5},
				Active:           true,
			},
			{
				ID:     "1205550000000000",
				Name:   "Archived Initiative",
				Active: false,
			},
		},
	}
}

// SampleRegistryYAML is the YAML form of a minimal valid registry, for
// store tests that read from disk.
const SampleRegistryYAML = `version: 1
policy:
  on_unknown_project: ask
  on_unknown_person: ask
  one_task_per_message: true
defaults:
  due_days_from_now: 3
people:
  - email: jordan@example.com
    name: Jordan Smith
    aliases: [me, jordan]
    active: true
projects:
  - id: "1205551234567890"
    name: Revenue Operations
    aliases: [rev ops, revops]
    allowed_assignees: [jordan@example.com]
    routing_keywords: [pipeline, forecast]
    context:
      sla:
        default_due_days_from_now: 2
      notes_guidance: "Created by asana-agent on request."
    active: true
`
