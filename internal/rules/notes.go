package rules

import (
	"strings"

	"github.com/Atiwari330/asana-agent/internal/registry"
)

// FallbackNotes is used when synthesis produces an empty result
const FallbackNotes = "No additional notes."

// placeholderContext carries the values available to placeholder
// resolvers during template substitution.
type placeholderContext struct {
	Title    string
	RawNotes string
}

// placeholderResolvers maps each supported {placeholder} token to the
// function producing its substitution value. Placeholders with no
// contextual value fall back to "TBD". Adding a placeholder means
// adding a row here, not touching control flow.
var placeholderResolvers = map[string]func(placeholderContext) string{
	"goal":                func(c placeholderContext) string { return orTBD(c.Title) },
	"details":             func(c placeholderContext) string { return orTBD(c.RawNotes) },
	"acceptance_criteria": tbd,
	"acceptance":          tbd,
	"customer":            tbd,
	"objective":           func(c placeholderContext) string { return orTBD(c.Title) },
	"dependencies":        tbd,
	"focus":               func(c placeholderContext) string { return orTBD(c.RawNotes) },
	"dates":               tbd,
	"issue":               func(c placeholderContext) string { return orTBD(c.Title) },
	"impact":              tbd,
	"steps":               tbd,
	"owner":               tbd,
	"company":             tbd,
	"stack":               tbd,
	"pains":               tbd,
	"timeline":            tbd,
	"budget":              tbd,
}

func tbd(placeholderContext) string { return "TBD" }

func orTBD(s string) string {
	if strings.TrimSpace(s) == "" {
		return "TBD"
	}
	return s
}

// SynthesizeNotes builds the task notes for a project: template
// substitution first, then keyword-triggered rule appends in declaration
// order, then the project's notes guidance prepended if absent.
// The refined title must be passed in, not the raw one — the rule
// keywords scan the refined text.
func SynthesizeNotes(project *registry.Project, rawNotes, refinedTitle string) string {
	pctx := placeholderContext{Title: refinedTitle, RawNotes: rawNotes}

	notes := strings.TrimSpace(rawNotes)
	if tmpl := project.Context.TaskGuidance.NotesTemplate; tmpl != "" {
		notes = substitute(tmpl, pctx)
	}

	// Rules match against the lowercase concatenation of refined title
	// and raw notes. Every matching rule fires, in declared order.
	haystack := strings.ToLower(refinedTitle + " " + rawNotes)
	for _, rule := range project.Context.Rules {
		if rule.Then.AppendNote == "" {
			continue
		}
		if containsAny(haystack, rule.When.ContainsAny) {
			if notes != "" {
				notes += "\n\n"
			}
			notes += rule.Then.AppendNote
		}
	}

	if guidance := strings.TrimSpace(project.Context.NotesGuidance); guidance != "" {
		if !strings.Contains(notes, guidance) {
			if notes != "" {
				notes = guidance + "\n\n" + notes
			} else {
				notes = guidance
			}
		}
	}

	if strings.TrimSpace(notes) == "" {
		return FallbackNotes
	}
	return notes
}

func substitute(tmpl string, pctx placeholderContext) string {
	result := tmpl
	for name, resolve := range placeholderResolvers {
		token := "{" + name + "}"
		if strings.Contains(result, token) {
			result = strings.ReplaceAll(result, token, resolve(pctx))
		}
	}
	return result
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
