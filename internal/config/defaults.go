package config

import (
	"os"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Asana: AsanaConfig{
			BaseURL:     "https://app.asana.com/api/1.0",
			TokenEnv:    "ASANA_ACCESS_TOKEN",
			MaxAttempts: 3,
		},
		Registry: RegistryConfig{
			CacheTTLMinutes: 5,
		},
		Ledger: LedgerConfig{
			Enabled: true,
		},
		Serve: ServeConfig{
			Addr: "localhost:8787",
		},
	}
}

// WriteDefault writes the default global configuration to a file
func WriteDefault(path string) error {
	content := `# asana-agent Global Configuration
version: "1"

# Asana API
asana:
  base_url: https://app.asana.com/api/1.0
  # Name of the environment variable holding the personal access token.
  # The token itself never goes in a config file.
  token_env: ASANA_ACCESS_TOKEN
  # Bounded retry on rate limiting
  max_attempts: 3

# Registry allowlist document
registry:
  # path: ~/.asana-agent/registry.yaml  # defaults to project-local, then global
  cache_ttl_minutes: 5

# Local confirmation ledger of created tasks
ledger:
  enabled: true
  # path: ~/.asana-agent/ledger.db

# HTTP facade (asana-agent serve --http)
serve:
  addr: localhost:8787
`
	return os.WriteFile(path, []byte(content), 0644)
}

// WriteProjectDefault writes the default project configuration to a file
func WriteProjectDefault(path string) error {
	content := `# asana-agent Project Configuration
version: "1"

# Project information
project:
  name: ""  # Auto-detected from directory name if empty

# Override global settings as needed
# asana:
#   max_attempts: 3
# registry:
#   path: .asana-agent/registry.yaml
`
	return os.WriteFile(path, []byte(content), 0644)
}

// WriteRegistryStarter writes a commented starter registry document
func WriteRegistryStarter(path string) error {
	content := `# asana-agent Registry
# The curated allowlist of projects and people the agent may create
# tasks for. Anything not listed here is unreachable.
version: 1

policy:
  on_unknown_project: ask   # ask | reject
  on_unknown_person: ask    # ask | reject
  one_task_per_message: true

defaults:
  due_days_from_now: 3

people: []
#  - email: jordan@example.com
#    name: Jordan Smith
#    aliases: [me, jordan]
#    role: Revenue Operations
#    active: true

projects: []
#  - id: "1205551234567890"
#    name: Revenue Operations
#    aliases: [rev ops, revops]
#    allowed_assignees: [jordan@example.com]
#    routing_keywords: [pipeline, forecast]
#    context:
#      task_guidance:
#        title_rules:
#          - Start with an action verb
#        notes_template: |
#          Goal: {goal}
#          Details: {details}
#          Acceptance criteria: {acceptance_criteria}
#      rules:
#        - when: {contains_any: [urgent, asap]}
#          then: {append_note: "Flagged urgent: confirm priority with the requester."}
#      sla:
#        default_due_days_from_now: 2
#      notes_guidance: "Created by asana-agent on request."
#    active: true
`
	return os.WriteFile(path, []byte(content), 0644)
}
