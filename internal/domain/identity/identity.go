// Where: internal/domain/identity/identity.go
// What: Per-run solution and project identifiers.
// Why: Give every generated solution fresh GUIDs in place of the template's fixed ones.
package identity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Set is the group of identifiers substituted into solution and project files.
type Set struct {
	SolutionItems string
	Source        string
	Test          string
	Project       string
	Integration   string
	Unit          string
}

// Values returns the identifiers in declaration order.
func (s Set) Values() []string {
	return []string{s.SolutionItems, s.Source, s.Test, s.Project, s.Integration, s.Unit}
}

// Generator produces a single identifier.
type Generator func() (uuid.UUID, error)

// maxAttempts bounds regeneration when a generator returns a duplicate.
const maxAttempts = 16

// New generates a Set of time-based identifiers.
func New() (Set, error) {
	return NewWith(uuid.NewUUID)
}

// NewWith generates a Set using gen. Values are uppercased and pairwise distinct.
func NewWith(gen Generator) (Set, error) {
	seen := make(map[string]struct{}, 6)
	next := func() (string, error) {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			id, err := gen()
			if err != nil {
				return "", fmt.Errorf("generate identifier: %w", err)
			}
			value := strings.ToUpper(id.String())
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			return value, nil
		}
		return "", fmt.Errorf("generate identifier: %d duplicate values in a row", maxAttempts)
	}

	var set Set
	targets := []*string{&set.SolutionItems, &set.Source, &set.Test, &set.Project, &set.Integration, &set.Unit}
	for _, target := range targets {
		value, err := next()
		if err != nil {
			return Set{}, err
		}
		*target = value
	}
	return set, nil
}
