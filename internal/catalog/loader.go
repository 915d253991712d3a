package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

// document mirrors the on-disk catalog JSON layout.
type document struct {
	AssessmentID string     `json:"assessmentId"`
	Name         string     `json:"name"`
	Version      string     `json:"version"`
	Questions    []Question `json:"questions"`
}

// LoadFile reads, shape-checks, and validates a single catalog document.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse builds a validated catalog from raw JSON. The document is
// schema-checked first, then defaults are filled, then the catalog-level
// rules run. Shape failures fail closed before any derivation happens.
func Parse(raw []byte) (*Catalog, error) {
	if err := checkShape(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	applyDefaults(&doc)

	c := New(doc.AssessmentID, doc.Name, doc.Version, doc.Questions)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// applyDefaults fills the policy defaults the schema leaves optional:
// weight 1, required true, and the conventional 1-5 scale domain.
func applyDefaults(doc *document) {
	for i := range doc.Questions {
		q := &doc.Questions[i]
		if q.Weight == 0 {
			q.Weight = 1
		}
		if q.OrderIndex == 0 {
			q.OrderIndex = i + 1
		}
		if q.Scoreable() && q.Domain.Min == 0 && q.Domain.Max == 0 {
			if q.Type == TypeBinary {
				q.Domain = ValueDomain{Min: 0, Max: 1}
			} else {
				q.Domain = ValueDomain{Min: 1, Max: 5}
			}
		}
	}
}

// LoadDir loads every *.json catalog under dir and returns the highest
// published version of each assessment. Versions compare as semver.
func LoadDir(dir string) (map[string]*Catalog, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan catalog dir: %w", err)
	}

	latest := make(map[string]*Catalog)
	for _, p := range paths {
		c, err := LoadFile(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		cur, ok := latest[c.AssessmentID]
		if !ok || semver.Compare(canonicalVersion(c.Version), canonicalVersion(cur.Version)) > 0 {
			latest[c.AssessmentID] = c
		}
	}
	return latest, nil
}

// canonicalVersion normalizes a stored version string for semver
// comparison. Catalog authors write "1.2.0"; x/mod/semver wants "v1.2.0".
func canonicalVersion(v string) string {
	return "v" + strings.TrimPrefix(v, "v")
}
