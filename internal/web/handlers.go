package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Atiwari330/asana-agent/internal/agent"
	"github.com/Atiwari330/asana-agent/internal/ledger"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req agent.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	result := s.orch.CreateTask(c.Request.Context(), &req)
	if !result.Success {
		// Validation and resolution failures are the caller's to fix
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	if s.ledger != nil {
		s.ledger.Record(&ledger.Entry{
			TaskGID:   result.TaskID,
			Permalink: result.Permalink,
			Project:   result.Details.Project,
			Assignee:  result.Details.Assignee,
			Title:     result.Details.Title,
			DueOn:     result.Details.DueDate,
		})
	}

	c.JSON(http.StatusCreated, result)
}

// handleRegistry returns a redacted registry summary: names and aliases
// only, no emails or project GIDs.
func (s *Server) handleRegistry(c *gin.Context) {
	reg := s.store.Load()

	type entry struct {
		Name    string   `json:"name"`
		Aliases []string `json:"aliases,omitempty"`
	}

	var projects, people []entry
	for _, p := range reg.ActiveProjects() {
		projects = append(projects, entry{Name: p.Name, Aliases: p.Aliases})
	}
	for _, p := range reg.ActivePeople() {
		people = append(people, entry{Name: p.Name, Aliases: p.Aliases})
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"people":   people,
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.ledger == nil {
		c.JSON(http.StatusOK, gin.H{"entries": []ledger.Entry{}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	entries, err := s.ledger.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
