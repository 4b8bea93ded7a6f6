package registry

// Registry is the curated allowlist of projects, people, and policy that
// controls what the agent is permitted to create in Asana.
type Registry struct {
	Version   int               `yaml:"version"`
	Policy    Policy            `yaml:"policy"`
	Defaults  Defaults          `yaml:"defaults"`
	People    []Person          `yaml:"people"`
	Projects  []Project         `yaml:"projects"`
	Templates map[string]string `yaml:"templates,omitempty"`
}

// Policy controls how resolution failures are surfaced
type Policy struct {
	OnUnknownProject  string `yaml:"on_unknown_project"`  // "ask" or "reject"
	OnUnknownPerson   string `yaml:"on_unknown_person"`   // "ask" or "reject"
	OneTaskPerMessage bool   `yaml:"one_task_per_message"`
}

// Defaults holds registry-wide fallbacks used when a project doesn't
// specify its own
type Defaults struct {
	ProjectID      string `yaml:"project_id,omitempty"`
	Assignee       string `yaml:"assignee,omitempty"`
	DueDaysFromNow int    `yaml:"due_days_from_now,omitempty"`
}

// Person is an allowlisted assignee keyed by email
type Person struct {
	Email      string   `yaml:"email"`
	Name       string   `yaml:"name"`
	Aliases    []string `yaml:"aliases,omitempty"`
	Role       string   `yaml:"role,omitempty"`
	Department string   `yaml:"department,omitempty"`
	Active     bool     `yaml:"active"`
}

// Project is an allowlisted Asana project with its task guidance
type Project struct {
	ID               string          `yaml:"id"`
	Name             string          `yaml:"name"`
	Aliases          []string        `yaml:"aliases,omitempty"`
	Type             string          `yaml:"type,omitempty"`
	AllowedAssignees []string        `yaml:"allowed_assignees,omitempty"`
	RoutingKeywords  []string        `yaml:"routing_keywords,omitempty"`
	Defaults         ProjectDefaults `yaml:"defaults,omitempty"`
	Context          ProjectContext  `yaml:"context,omitempty"`
	Active           bool            `yaml:"active"`
}

// ProjectDefaults holds per-project fallbacks
type ProjectDefaults struct {
	DueDaysFromNow int `yaml:"due_days_from_now,omitempty"`
}

// ProjectContext carries the task guidance applied during normalization
type ProjectContext struct {
	TaskGuidance  TaskGuidance `yaml:"task_guidance,omitempty"`
	Rules         []Rule       `yaml:"rules,omitempty"`
	SLA           SLA          `yaml:"sla,omitempty"`
	NotesGuidance string       `yaml:"notes_guidance,omitempty"`
}

// TaskGuidance holds title rules and the notes template for a project
type TaskGuidance struct {
	TitleRules    []string `yaml:"title_rules,omitempty"`
	NotesTemplate string   `yaml:"notes_template,omitempty"`
}

// Rule is a declarative condition/action pair evaluated during notes
// synthesis: when any trigger keyword appears in the task text, the
// rule's note is appended.
type Rule struct {
	When RuleCondition `yaml:"when"`
	Then RuleAction    `yaml:"then"`
}

// RuleCondition matches when any listed keyword is present
type RuleCondition struct {
	ContainsAny []string `yaml:"contains_any,omitempty"`
}

// RuleAction appends text to the synthesized notes
type RuleAction struct {
	AppendNote string `yaml:"append_note,omitempty"`
}

// SLA holds the project's service-level due-date offset
type SLA struct {
	DefaultDueDaysFromNow int `yaml:"default_due_days_from_now,omitempty"`
}

// AllowsAssignee reports whether the person's email is in the project's
// allowed assignee set. This is the authorization boundary: a task is
// never created for a (person, project) pair that fails this check.
func (p *Project) AllowsAssignee(email string) bool {
	for _, allowed := range p.AllowedAssignees {
		if allowed == email {
			return true
		}
	}
	return false
}

// ActiveProjects returns only projects marked active
func (r *Registry) ActiveProjects() []Project {
	var result []Project
	for _, p := range r.Projects {
		if p.Active {
			result = append(result, p)
		}
	}
	return result
}

// ActivePeople returns only people marked active
func (r *Registry) ActivePeople() []Person {
	var result []Person
	for _, p := range r.People {
		if p.Active {
			result = append(result, p)
		}
	}
	return result
}

// FindProjectByID finds a project by its Asana GID
func (r *Registry) FindProjectByID(id string) *Project {
	for i := range r.Projects {
		if r.Projects[i].ID == id {
			return &r.Projects[i]
		}
	}
	return nil
}

// Empty reports whether the registry has no resolvable entities
func (r *Registry) Empty() bool {
	return len(r.People) == 0 && len(r.Projects) == 0
}
