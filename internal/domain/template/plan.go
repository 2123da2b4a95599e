// Where: internal/domain/template/plan.go
// What: Pure materialization planning over a list of template files.
// Why: Decide inclusion and destinations without touching a filesystem.
package template

import (
	"sort"

	"github.com/poruru/apigen/internal/domain/answers"
	"github.com/poruru/apigen/internal/domain/identity"
	"github.com/poruru/apigen/internal/domain/provider"
)

// Entry is one planned template file.
type Entry struct {
	Source      string
	Destination string
	Excluded    bool
	ExcludedBy  string
}

// Plan is the full materialization decision for a run.
type Plan struct {
	Entries []Entry
	Content Rules
}

// Included returns the entries that will be written.
func (p Plan) Included() []Entry {
	out := make([]Entry, 0, len(p.Entries))
	for _, e := range p.Entries {
		if !e.Excluded {
			out = append(out, e)
		}
	}
	return out
}

// ExcludedEntries returns the entries skipped by the exclusion policy.
func (p Plan) ExcludedEntries() []Entry {
	var out []Entry
	for _, e := range p.Entries {
		if e.Excluded {
			out = append(out, e)
		}
	}
	return out
}

// NewPlan computes destinations and exclusions for files, which are
// slash-separated paths relative to the template root. Entries come back
// sorted by source path.
func NewPlan(files []string, a answers.Answers, b provider.Bundle, ids identity.Set) Plan {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	pathRules := PathRules(a)
	entries := make([]Entry, 0, len(sorted))
	for _, src := range sorted {
		entry := Entry{
			Source:      src,
			Destination: pathRules.Apply(src),
		}
		if m, ok := Excluded(b.Provider, src); ok {
			entry.Excluded = true
			entry.ExcludedBy = m.String()
		}
		entries = append(entries, entry)
	}
	return Plan{
		Entries: entries,
		Content: ContentRules(a, b, ids),
	}
}
