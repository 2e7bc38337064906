package prompts

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Built-in system prompts. A deployment without a templates file runs
// on exactly these.
const (
	builtinDefault = "You are a helpful assistant. Provide clear, direct responses without unnecessary detail. Question: {query}"
	builtinCode    = "You are a programming teacher. First give a ONE-SENTENCE explanation. Then after 'CODE:', show simple, practical code examples with minimal comments. Keep both explanation and code concise. Question: {query}"
	builtinExplain = "Explain this concept in 2-3 short, clear sentences: {query}"
)

// templatesFile is the on-disk YAML shape:
//
//	templates:
//	  default: "You are a helpful assistant ... Question: {query}"
//	  code: "..."
//	bindings:
//	  ask: default
//	  code: code
//
// Templates replace same-named built-ins and may add new names.
// Bindings overlay the default command bindings.
type templatesFile struct {
	Templates map[string]string `yaml:"templates"`
	Bindings  map[string]string `yaml:"bindings"`
}

// BuiltinSet returns the compiled-in template set.
func BuiltinSet() Set {
	set := make(Set, 3)
	for name, text := range map[string]string{
		"default": builtinDefault,
		"code":    builtinCode,
		"explain": builtinExplain,
	} {
		// Built-in text is known-valid; a parse failure here is a
		// programming error.
		t, err := NewTemplate(name, text)
		if err != nil {
			panic(fmt.Sprintf("builtin template %q: %v", name, err))
		}
		set[name] = t
	}
	return set
}

// DefaultBindings returns the static command-to-template mapping.
// Commands are a closed set at the dispatch layer; these bindings are
// configuration, never mutated at runtime by user input.
func DefaultBindings() map[string]string {
	return map[string]string{
		"ask":  "default",
		"code": "code",
	}
}

// LoadFile reads a templates file and returns the merged template set
// (built-ins overlaid with the file's templates) and the merged
// bindings. Unknown top-level YAML keys are rejected so typos surface
// at load time instead of silently shipping a half-applied file.
func LoadFile(path string) (Set, map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file templatesFile
	if err := dec.Decode(&file); err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}

	set := BuiltinSet()
	for name, text := range file.Templates {
		t, err := NewTemplate(name, text)
		if err != nil {
			return nil, nil, &LoadError{Path: path, Err: err}
		}
		set[name] = t
	}

	bindings := DefaultBindings()
	for command, name := range file.Bindings {
		bindings[command] = name
	}

	if err := set.validateBindings(bindings); err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}

	return set, bindings, nil
}
