package prompts

import "strings"

// placeholder is the single substitution point a template must contain.
const placeholder = "{query}"

// Template is a named prompt template, stored pre-split around its one
// query slot. Rendering is plain concatenation, so placeholder syntax
// inside the user's query is never re-interpreted.
type Template struct {
	name   string
	prefix string
	suffix string
}

// NewTemplate parses text into a Template. The text must contain the
// {query} placeholder exactly once.
func NewTemplate(name, text string) (*Template, error) {
	if name == "" {
		return nil, &InvalidTemplateError{Name: name, Reason: "template name cannot be empty"}
	}
	switch strings.Count(text, placeholder) {
	case 0:
		return nil, &InvalidTemplateError{Name: name, Reason: "missing {query} placeholder"}
	case 1:
	default:
		return nil, &InvalidTemplateError{Name: name, Reason: "more than one {query} placeholder"}
	}

	prefix, suffix, _ := strings.Cut(text, placeholder)
	return &Template{name: name, prefix: prefix, suffix: suffix}, nil
}

// Name returns the template's unique key.
func (t *Template) Name() string {
	return t.name
}

// Render substitutes query verbatim into the template's slot.
func (t *Template) Render(query string) string {
	return t.prefix + query + t.suffix
}

// Set is an immutable collection of templates keyed by name. The
// Manager swaps whole sets atomically on reload; a Set itself is never
// mutated after construction.
type Set map[string]*Template

// Lookup returns the named template.
func (s Set) Lookup(name string) (*Template, bool) {
	t, ok := s[name]
	return t, ok
}

// Names returns the template names in the set, unordered.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}

// validateBindings checks that every bound template name exists in the
// set, so a command can never resolve to a missing template at runtime.
func (s Set) validateBindings(bindings map[string]string) error {
	for command, name := range bindings {
		if _, ok := s[name]; !ok {
			return &InvalidTemplateError{
				Name:   name,
				Reason: "bound to command " + command + " but not defined",
			}
		}
	}
	return nil
}
