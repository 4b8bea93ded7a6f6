package rules

import (
	"strings"
	"testing"

	"github.com/Atiwari330/asana-agent/internal/registry"
	"github.com/Atiwari330/asana-agent/internal/testutil"
)

func TestSynthesizeNotesTemplateSubstitution(t *testing.T) {
	t.Parallel()

	project := &registry.Project{
		Context: registry.ProjectContext{
			TaskGuidance: registry.TaskGuidance{
				NotesTemplate: "Goal: {goal}\nDetails: {details}\nAcceptance criteria: {acceptance_criteria}",
			},
		},
	}

	notes := SynthesizeNotes(project, "ship by Friday", "Send the update")

	if !strings.Contains(notes, "Goal: Send the update") {
		t.Errorf("Expected goal substituted from title, got:\n%s", notes)
	}
	if !strings.Contains(notes, "Details: ship by Friday") {
		t.Errorf("Expected details substituted from raw notes, got:\n%s", notes)
	}
	if !strings.Contains(notes, "Acceptance criteria: TBD") {
		t.Errorf("Expected TBD fallback, got:\n%s", notes)
	}
}

func TestSynthesizeNotesAllMatchingRulesFireInOrder(t *testing.T) {
	t.Parallel()

	project := &registry.Project{
		Context: registry.ProjectContext{
			Rules: []registry.Rule{
				{
					When: registry.RuleCondition{ContainsAny: []string{"urgent"}},
					Then: registry.RuleAction{AppendNote: "First append."},
				},
				{
					When: registry.RuleCondition{ContainsAny: []string{"nomatch"}},
					Then: registry.RuleAction{AppendNote: "Should not appear."},
				},
				{
					When: registry.RuleCondition{ContainsAny: []string{"leadership", "exec"}},
					Then: registry.RuleAction{AppendNote: "Second append."},
				},
			},
		},
	}

	notes := SynthesizeNotes(project, "this is urgent", "Email leadership")

	first := strings.Index(notes, "First append.")
	second := strings.Index(notes, "Second append.")
	if first == -1 || second == -1 {
		t.Fatalf("Expected both matching rules to append, got:\n%s", notes)
	}
	if first > second {
		t.Error("Rule appends out of declaration order")
	}
	if strings.Contains(notes, "Should not appear.") {
		t.Error("Non-matching rule fired")
	}
	if strings.Count(notes, "First append.") != 1 {
		t.Error("Rule appended more than once")
	}
}

func TestSynthesizeNotesRuleMatchesRefinedTitle(t *testing.T) {
	t.Parallel()

	// The keyword only appears in the refined title, not the raw notes
	project := &registry.Project{
		Context: registry.ProjectContext{
			Rules: []registry.Rule{
				{
					When: registry.RuleCondition{ContainsAny: []string{"send"}},
					Then: registry.RuleAction{AppendNote: "Sending guidance."},
				},
			},
		},
	}

	notes := SynthesizeNotes(project, "", "Send the weekly email")
	if !strings.Contains(notes, "Sending guidance.") {
		t.Errorf("Expected rule to match refined title, got:\n%s", notes)
	}
}

func TestSynthesizeNotesGuidancePrepended(t *testing.T) {
	t.Parallel()

	project := &registry.Project{
		Context: registry.ProjectContext{
			NotesGuidance: "Created by asana-agent on request.",
		},
	}

	notes := SynthesizeNotes(project, "some details", "A title")
	if !strings.HasPrefix(notes, "Created by asana-agent on request.") {
		t.Errorf("Expected guidance prepended, got:\n%s", notes)
	}

	// Guidance already present is not duplicated
	again := SynthesizeNotes(project, notes, "A title")
	if strings.Count(again, "Created by asana-agent on request.") != 1 {
		t.Errorf("Guidance duplicated:\n%s", again)
	}
}

func TestFullProjectGuidance(t *testing.T) {
	t.Parallel()

	// Exercise title refinement and notes synthesis together against a
	// project carrying rules, template, and guidance all at once.
	project := testutil.SampleRegistry().FindProjectByID("1205551234567890")
	if project == nil {
		t.Fatal("Sample registry missing Revenue Operations project")
	}

	title := RefineTitle(project, "urgent email for leadership")
	if !strings.HasPrefix(title, "Send ") {
		t.Errorf("Expected Send prepended for an email task, got %q", title)
	}

	notes := SynthesizeNotes(project, "asap please", title)
	if !strings.HasPrefix(notes, "Created by asana-agent on request.") {
		t.Errorf("Expected guidance prepended, got:\n%s", notes)
	}
	if !strings.Contains(notes, "Goal: "+title) {
		t.Errorf("Expected template goal from refined title, got:\n%s", notes)
	}
	if !strings.Contains(notes, "Flagged urgent: confirm priority with the requester.") {
		t.Errorf("Expected urgency rule to fire, got:\n%s", notes)
	}
	if !strings.Contains(notes, "Leadership visibility: loop in the VP before sending.") {
		t.Errorf("Expected leadership rule to fire, got:\n%s", notes)
	}
}

func TestSynthesizeNotesEmptyFallback(t *testing.T) {
	t.Parallel()

	project := &registry.Project{}
	if notes := SynthesizeNotes(project, "", "A title"); notes != FallbackNotes {
		t.Errorf("Expected %q, got %q", FallbackNotes, notes)
	}
}

func TestSynthesizeNotesRawNotesWithoutTemplate(t *testing.T) {
	t.Parallel()

	project := &registry.Project{}
	if notes := SynthesizeNotes(project, "just these notes", "A title"); notes != "just these notes" {
		t.Errorf("Expected raw notes passthrough, got %q", notes)
	}
}
