package registry

import "testing"

func testRegistry() *Registry {
	return &Registry{
		People: []Person{
			{
				Email:   "jordan@example.com",
				Name:    "Jordan Smith",
				Aliases: []string{"me", "jordan"},
				Active:  true,
			},
			{
				Email:   "priya@example.com",
				Name:    "Priya Patel",
				Aliases: []string{"pp"},
				Active:  true,
			},
			{
				Email:   "former@example.com",
				Name:    "Former Employee",
				Aliases: []string{"ghost"},
				Active:  false,
			},
		},
		Projects: []Project{
			{
				ID:               "101",
				Name:             "Revenue Operations",
				Aliases:          []string{"rev ops"},
				AllowedAssignees: []string{"jordan@example.com"},
				RoutingKeywords:  []string{"pipeline", "forecast"},
				Active:           true,
			},
			{
				ID:              "102",
				Name:            "Customer Success",
				Aliases:         []string{"cs"},
				RoutingKeywords: []string{"onboarding"},
				Active:          true,
			},
			{
				ID:      "103",
				Name:    "Archived Initiative",
				Aliases: []string{"old"},
				Active:  false,
			},
		},
	}
}

func TestResolvePersonByEmail(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	p := reg.ResolvePerson("JORDAN@example.com")
	if p == nil {
		t.Fatal("Expected match by email")
	}
	if p.Email != "jordan@example.com" {
		t.Errorf("Expected jordan@example.com, got %s", p.Email)
	}
}

func TestResolvePersonByAlias(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	p := reg.ResolvePerson("Me")
	if p == nil {
		t.Fatal("Expected match by alias")
	}
	if p.Email != "jordan@example.com" {
		t.Errorf("Expected jordan@example.com, got %s", p.Email)
	}
}

func TestResolvePersonByFullName(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	p := reg.ResolvePerson("priya patel")
	if p == nil {
		t.Fatal("Expected match by full name")
	}
	if p.Email != "priya@example.com" {
		t.Errorf("Expected priya@example.com, got %s", p.Email)
	}
}

func TestResolvePersonByNameToken(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	p := reg.ResolvePerson("Smith")
	if p == nil {
		t.Fatal("Expected match by name token")
	}
	if p.Email != "jordan@example.com" {
		t.Errorf("Expected jordan@example.com, got %s", p.Email)
	}
}

func TestResolvePersonInactiveNeverMatches(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	for _, input := range []string{"former@example.com", "ghost", "Former Employee", "Former"} {
		if p := reg.ResolvePerson(input); p != nil {
			t.Errorf("Input %q matched inactive person %s", input, p.Email)
		}
	}
}

func TestResolvePersonNotFound(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	if p := reg.ResolvePerson("nobody"); p != nil {
		t.Errorf("Expected no match, got %s", p.Email)
	}
	if p := reg.ResolvePerson(""); p != nil {
		t.Errorf("Expected no match for empty input, got %s", p.Email)
	}
}

func TestResolveProjectByName(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	p := reg.ResolveProject("revenue operations")
	if p == nil {
		t.Fatal("Expected match by name")
	}
	if p.ID != "101" {
		t.Errorf("Expected project 101, got %s", p.ID)
	}
}

func TestResolveProjectByAlias(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	p := reg.ResolveProject("Rev Ops")
	if p == nil {
		t.Fatal("Expected match by alias")
	}
	if p.ID != "101" {
		t.Errorf("Expected project 101, got %s", p.ID)
	}
}

func TestResolveProjectByRoutingKeyword(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	// The keyword is a substring of the input, not the other way around
	p := reg.ResolveProject("something about the sales pipeline")
	if p == nil {
		t.Fatal("Expected match by routing keyword")
	}
	if p.ID != "101" {
		t.Errorf("Expected project 101, got %s", p.ID)
	}
}

func TestResolveProjectNameBeatsKeyword(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	// Exact name match on one project wins over keyword matching
	p := reg.ResolveProject("Customer Success")
	if p == nil {
		t.Fatal("Expected match")
	}
	if p.ID != "102" {
		t.Errorf("Expected project 102, got %s", p.ID)
	}
}

func TestResolveProjectInactiveNeverMatches(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	for _, input := range []string{"Archived Initiative", "old"} {
		if p := reg.ResolveProject(input); p != nil {
			t.Errorf("Input %q matched inactive project %s", input, p.ID)
		}
	}
}

func TestAllowsAssignee(t *testing.T) {
	t.Parallel()
	reg := testRegistry()

	project := reg.ResolveProject("rev ops")
	if !project.AllowsAssignee("jordan@example.com") {
		t.Error("Expected jordan@example.com to be allowed")
	}
	if project.AllowsAssignee("priya@example.com") {
		t.Error("Expected priya@example.com to be disallowed")
	}
}
