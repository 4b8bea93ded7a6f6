// Package web is the HTTP facade over the task-creation pipeline, for
// callers that integrate over HTTP instead of MCP.
package web

import (
	"github.com/gin-gonic/gin"

	"github.com/Atiwari330/asana-agent/internal/agent"
	"github.com/Atiwari330/asana-agent/internal/ledger"
	"github.com/Atiwari330/asana-agent/internal/registry"
)

// Server is the asana-agent HTTP server
type Server struct {
	orch   *agent.Orchestrator
	store  *registry.Store
	ledger *ledger.Storage // nil when the ledger is disabled
	router *gin.Engine
}

// NewServer creates a new HTTP server
func NewServer(orch *agent.Orchestrator, store *registry.Store, ledgerStore *ledger.Storage) *Server {
	router := gin.Default()

	s := &Server{
		orch:   orch,
		store:  store,
		ledger: ledgerStore,
		router: router,
	}

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/registry", s.handleRegistry)
		api.GET("/history", s.handleHistory)
	}

	return s
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
