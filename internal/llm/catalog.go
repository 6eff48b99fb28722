package llm

import "strings"

// Catalog is the ordered fallback priority of candidate model identifiers.
// First entry is the fastest/cheapest model, later entries the slower, more
// capable fallbacks. Read-only after construction; safe to share across
// concurrent pipeline runs.
type Catalog struct {
	models []string
}

// NewCatalog builds a catalog from an ordered model list. Blank entries are
// dropped; an effectively empty list yields ErrNoCandidates.
func NewCatalog(models []string) (*Catalog, error) {
	cleaned := make([]string, 0, len(models))
	for _, m := range models {
		if s := strings.TrimSpace(m); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoCandidates
	}
	return &Catalog{models: cleaned}, nil
}

// Models returns a copy of the priority list.
func (c *Catalog) Models() []string {
	out := make([]string, len(c.models))
	copy(out, c.models)
	return out
}

// Primary is the first candidate.
func (c *Catalog) Primary() string {
	return c.models[0]
}

func (c *Catalog) Len() int {
	return len(c.models)
}
