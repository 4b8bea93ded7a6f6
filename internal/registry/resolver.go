package registry

import "strings"

// ResolvePerson maps a free-text reference to an allowlisted person.
// Matching is case-insensitive and tried in order: exact email, exact
// alias, exact full name, then any whitespace-delimited token of the
// full name. First match wins. Inactive people never match.
func (r *Registry) ResolvePerson(input string) *Person {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return nil
	}

	for i := range r.People {
		p := &r.People[i]
		if !p.Active {
			continue
		}
		if strings.ToLower(p.Email) == needle {
			return p
		}
	}

	for i := range r.People {
		p := &r.People[i]
		if !p.Active {
			continue
		}
		for _, alias := range p.Aliases {
			if strings.ToLower(alias) == needle {
				return p
			}
		}
	}

	for i := range r.People {
		p := &r.People[i]
		if !p.Active {
			continue
		}
		if strings.ToLower(p.Name) == needle {
			return p
		}
	}

	for i := range r.People {
		p := &r.People[i]
		if !p.Active {
			continue
		}
		for _, token := range strings.Fields(strings.ToLower(p.Name)) {
			if token == needle {
				return p
			}
		}
	}

	return nil
}

// ResolveProject maps a free-text reference to an allowlisted project.
// Matching is case-insensitive and tried in order: exact name, exact
// alias, then any routing keyword appearing as a substring of the
// input. First match wins. Inactive projects never match.
func (r *Registry) ResolveProject(input string) *Project {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return nil
	}

	for i := range r.Projects {
		p := &r.Projects[i]
		if !p.Active {
			continue
		}
		if strings.ToLower(p.Name) == needle {
			return p
		}
	}

	for i := range r.Projects {
		p := &r.Projects[i]
		if !p.Active {
			continue
		}
		for _, alias := range p.Aliases {
			if strings.ToLower(alias) == needle {
				return p
			}
		}
	}

	for i := range r.Projects {
		p := &r.Projects[i]
		if !p.Active {
			continue
		}
		for _, keyword := range p.RoutingKeywords {
			if keyword != "" && strings.Contains(needle, strings.ToLower(keyword)) {
				return p
			}
		}
	}

	return nil
}
