// Package rules rewrites task titles and synthesizes task notes
// according to a project's task guidance.
package rules

import (
	"strings"

	"github.com/Atiwari330/asana-agent/internal/registry"
)

// actionVerbs is the set of accepted imperative opening verbs. A title
// already starting with one of these is left alone.
var actionVerbs = map[string]bool{
	"create": true, "send": true, "email": true, "confirm": true,
	"schedule": true, "deliver": true, "complete": true, "review": true,
	"update": true, "fix": true, "implement": true, "analyze": true,
	"prepare": true, "draft": true, "finalize": true, "submit": true,
	"approve": true, "coordinate": true,
}

// RefineTitle rewrites a raw title to satisfy the project's title rules.
// If the project declares a rule requiring an imperative opening verb
// and the title doesn't start with one, a verb inferred from the title's
// keywords is prepended. At most one verb is prepended no matter how
// many rules mention verbs.
func RefineTitle(project *registry.Project, rawTitle string) string {
	title := strings.TrimSpace(rawTitle)
	if title == "" {
		return title
	}

	if !requiresActionVerb(project) {
		return title
	}

	firstWord := strings.ToLower(strings.Fields(title)[0])
	if actionVerbs[firstWord] {
		return title
	}

	return inferVerb(title) + " " + title
}

func requiresActionVerb(project *registry.Project) bool {
	for _, rule := range project.Context.TaskGuidance.TitleRules {
		if strings.Contains(strings.ToLower(rule), "verb") {
			return true
		}
	}
	return false
}

// inferVerb picks an opening verb by keyword sniffing the title
func inferVerb(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "email") || strings.Contains(lower, "send"):
		return "Send"
	case strings.Contains(lower, "meeting") || strings.Contains(lower, "call"):
		return "Schedule"
	case strings.Contains(lower, "document") || strings.Contains(lower, "report"):
		return "Prepare"
	default:
		return "Complete"
	}
}
