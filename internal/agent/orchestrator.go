// Package agent sequences the task-normalization pipeline: registry
// resolution, authorization, title and notes rewriting, due-date
// normalization, and creation against Asana.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Atiwari330/asana-agent/internal/asana"
	"github.com/Atiwari330/asana-agent/internal/duedate"
	"github.com/Atiwari330/asana-agent/internal/registry"
	"github.com/Atiwari330/asana-agent/internal/rules"
)

// Request is the inbound task-creation request from the tool-calling
// layer. Project, assignee, and title are free text; notes and due date
// are optional.
type Request struct {
	Project  string `json:"project"`
	Assignee string `json:"assignee"`
	Title    string `json:"title"`
	Notes    string `json:"notes,omitempty"`
	DueOn    string `json:"due_on,omitempty"`
}

// Result is the outbound envelope. Failures are carried in Error, never
// raised past the orchestrator boundary.
type Result struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	TaskID    string   `json:"taskId,omitempty"`
	Permalink string   `json:"permalink,omitempty"`
	Details   *Details `json:"details,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Details describes the resolved task for the confirmation message
type Details struct {
	Project  string `json:"project"`
	Assignee string `json:"assignee"`
	Title    string `json:"title"`
	DueDate  string `json:"dueDate"`
}

// Orchestrator wires the pipeline's collaborators together
type Orchestrator struct {
	store  *registry.Store
	client *asana.Client
	dates  *duedate.Normalizer
	retry  asana.RetryPolicy
}

// New creates an Orchestrator with the default retry policy
func New(store *registry.Store, client *asana.Client) *Orchestrator {
	return &Orchestrator{
		store:  store,
		client: client,
		dates:  duedate.New(),
		retry:  asana.DefaultRetryPolicy(),
	}
}

// WithDates overrides the due-date normalizer (fixed clock in tests)
func (o *Orchestrator) WithDates(n *duedate.Normalizer) *Orchestrator {
	o.dates = n
	return o
}

// WithRetryPolicy overrides the retry policy
func (o *Orchestrator) WithRetryPolicy(p asana.RetryPolicy) *Orchestrator {
	o.retry = p
	return o
}

// CreateTask runs the full pipeline for one request. Validation is
// complete before any network call; a resolution or permission failure
// never leaves a partial task behind. Exactly one task is created per
// successful invocation.
func (o *Orchestrator) CreateTask(ctx context.Context, req *Request) *Result {
	reg := o.store.Load()

	if strings.TrimSpace(req.Title) == "" {
		return failure("a task title is required")
	}

	project := reg.ResolveProject(req.Project)
	if project == nil {
		return failure(unknownProjectMessage(reg, req.Project))
	}

	person := reg.ResolvePerson(req.Assignee)
	if person == nil {
		return failure(unknownPersonMessage(reg, req.Assignee))
	}

	if !project.AllowsAssignee(person.Email) {
		return failure(notAllowedMessage(reg, project, person))
	}

	title := rules.RefineTitle(project, req.Title)
	notes := rules.SynthesizeNotes(project, req.Notes, title)

	dueOn, ok := o.dates.Format(req.DueOn)
	if !ok {
		dueOn = o.dates.Default(project, reg)
	}

	created, err := o.client.CreateWithRetry(ctx, &asana.TaskRequest{
		Name:     title,
		Notes:    notes,
		Assignee: person.Email,
		DueOn:    dueOn,
		Projects: []string{project.ID},
	}, o.retry)
	if err != nil {
		return failure(serviceFaultMessage(err))
	}

	assigneeName := created.AssigneeName
	if assigneeName == "" {
		assigneeName = person.Name
	}

	return &Result{
		Success:   true,
		Message:   fmt.Sprintf("Created %q in %s, assigned to %s, due %s", title, project.Name, assigneeName, dueOn),
		TaskID:    created.TaskGID,
		Permalink: created.PermalinkURL,
		Details: &Details{
			Project:  project.Name,
			Assignee: assigneeName,
			Title:    title,
			DueDate:  dueOn,
		},
	}
}

func failure(msg string) *Result {
	return &Result{Success: false, Error: msg}
}

// unknownProjectMessage is policy-gated: under "ask" it poses a
// clarifying question enumerating every active project's name and first
// alias; under "reject" it refuses outright.
func unknownProjectMessage(reg *registry.Registry, input string) string {
	if reg.Policy.OnUnknownProject != "ask" {
		return fmt.Sprintf("project %q is not in the registry; task creation rejected", input)
	}

	var options []string
	for _, p := range reg.ActiveProjects() {
		label := p.Name
		if len(p.Aliases) > 0 {
			label = fmt.Sprintf("%s (%s)", p.Name, p.Aliases[0])
		}
		options = append(options, label)
	}
	if len(options) == 0 {
		return fmt.Sprintf("project %q is not in the registry and no projects are configured", input)
	}
	return fmt.Sprintf("I don't recognize the project %q. Did you mean one of: %s?", input, strings.Join(options, ", "))
}

func unknownPersonMessage(reg *registry.Registry, input string) string {
	if reg.Policy.OnUnknownPerson != "ask" {
		return fmt.Sprintf("assignee %q is not in the registry; task creation rejected", input)
	}

	var options []string
	for _, p := range reg.ActivePeople() {
		label := p.Name
		if len(p.Aliases) > 0 {
			label = fmt.Sprintf("%s (%s)", p.Name, p.Aliases[0])
		}
		options = append(options, label)
	}
	if len(options) == 0 {
		return fmt.Sprintf("assignee %q is not in the registry and no people are configured", input)
	}
	return fmt.Sprintf("I don't recognize the assignee %q. Did you mean one of: %s?", input, strings.Join(options, ", "))
}

// notAllowedMessage is never policy-gated: authorization violations are
// always rejected, listing the project's valid assignees.
func notAllowedMessage(reg *registry.Registry, project *registry.Project, person *registry.Person) string {
	var allowed []string
	for _, email := range project.AllowedAssignees {
		if p := reg.ResolvePerson(email); p != nil {
			allowed = append(allowed, p.Name)
		} else {
			allowed = append(allowed, email)
		}
	}
	return fmt.Sprintf("%s is not an allowed assignee for %s. Valid assignees: %s",
		person.Name, project.Name, strings.Join(allowed, ", "))
}

func serviceFaultMessage(err error) string {
	if errors.Is(err, asana.ErrMaxRetries) {
		return "Asana is rate limiting requests and retries were exhausted; try again in a minute"
	}

	var apiErr *asana.APIError
	if errors.As(err, &apiErr) {
		if hint := apiErr.Hint(); hint != "" {
			return fmt.Sprintf("%s (%s)", apiErr.Error(), hint)
		}
		return apiErr.Error()
	}

	return err.Error()
}
