package config

import (
	"fmt"
	"slices"
	"strings"
)

// Filters are context and project filters split by kind.
type Filters struct {
	Contexts         []string
	Projects         []string
	ExcludedContexts []string
	ExcludedProjects []string
}

// IsFilter reports whether arg looks like a context or project filter
// ("@ctx", "+proj", "-@ctx" or "-+proj").
func IsFilter(arg string) bool {
	arg = strings.TrimPrefix(arg, "-")
	return strings.HasPrefix(arg, "@") || strings.HasPrefix(arg, "+")
}

// ParseFilters parses filter arguments. An argument may hold several
// filters separated by whitespace.
func ParseFilters(args []string) (Filters, error) {
	var f Filters
	for _, arg := range args {
		for _, item := range strings.Fields(arg) {
			if err := f.add(item); err != nil {
				return Filters{}, err
			}
		}
	}
	if err := f.check(); err != nil {
		return Filters{}, err
	}
	return f, nil
}

func (f *Filters) add(item string) error {
	name, excluded := strings.CutPrefix(item, "-")
	var target *[]string
	var kind string
	switch {
	case strings.HasPrefix(name, "@"):
		kind, target = "context", &f.Contexts
		if excluded {
			target = &f.ExcludedContexts
		}
	case strings.HasPrefix(name, "+"):
		kind, target = "project", &f.Projects
		if excluded {
			target = &f.ExcludedProjects
		}
	default:
		return fmt.Errorf("unrecognized filter: %s", item)
	}
	name = name[1:]
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	if !slices.Contains(*target, name) {
		*target = append(*target, name)
	}
	return nil
}

func (f Filters) check() error {
	for _, c := range f.Contexts {
		if slices.Contains(f.ExcludedContexts, c) {
			return fmt.Errorf("context %s is both included and excluded", c)
		}
	}
	for _, p := range f.Projects {
		if slices.Contains(f.ExcludedProjects, p) {
			return fmt.Errorf("project %s is both included and excluded", p)
		}
	}
	return nil
}

// MergeFilters adds the override filters to base. An override that negates
// a base filter replaces it, so "-@home" on the command line cancels "@home"
// from a config file.
func MergeFilters(base, overrides []string) StringList {
	var merged StringList
	for _, arg := range base {
		merged = append(merged, strings.Fields(arg)...)
	}
	for _, arg := range overrides {
		for _, item := range strings.Fields(arg) {
			merged = slices.DeleteFunc(merged, func(existing string) bool {
				return existing == opposite(item)
			})
			if !slices.Contains(merged, item) {
				merged = append(merged, item)
			}
		}
	}
	return merged
}

func opposite(item string) string {
	if rest, ok := strings.CutPrefix(item, "-"); ok {
		return rest
	}
	return "-" + item
}
