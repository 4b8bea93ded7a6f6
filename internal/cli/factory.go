package cli

import (
	"time"

	"github.com/Atiwari330/asana-agent/internal/agent"
	"github.com/Atiwari330/asana-agent/internal/asana"
	"github.com/Atiwari330/asana-agent/internal/config"
	"github.com/Atiwari330/asana-agent/internal/ledger"
	"github.com/Atiwari330/asana-agent/internal/registry"
)

// buildPipeline constructs the orchestrator and its collaborators from
// loaded configuration. Shared by the create, serve, and doctor paths.
func buildPipeline(cfg *config.Config) (*agent.Orchestrator, *registry.Store) {
	store := registry.NewStore(cfg.RegistryPath(),
		registry.WithTTL(time.Duration(cfg.Registry.CacheTTLMinutes)*time.Minute))

	client := asana.NewClient(cfg.Token(), asana.WithBaseURL(cfg.Asana.BaseURL))

	policy := asana.DefaultRetryPolicy()
	if cfg.Asana.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.Asana.MaxAttempts
	}

	orch := agent.New(store, client).WithRetryPolicy(policy)
	return orch, store
}

// openLedger opens the confirmation ledger, or returns nil when it is
// disabled or unavailable. Ledger failures never block task creation.
func openLedger(cfg *config.Config) *ledger.Storage {
	if !cfg.Ledger.Enabled {
		return nil
	}
	store, err := ledger.NewStorage(cfg.LedgerPath())
	if err != nil {
		return nil
	}
	return store
}
