// Package catalog holds the immutable keyword catalog and the pure filename
// classifier built on top of it. Classification never touches the filesystem;
// it is a function of (filename, catalog) only.
package catalog

import (
	"strings"

	"github.com/complysort/complysort/internal/models"
)

// Entry pairs a framework identifier with its lowercase keyword fragments.
type Entry struct {
	ID       string
	Keywords []string
}

// Catalog is an ordered, immutable set of framework entries. Iteration order
// is fixed at construction time so classification results are deterministic.
type Catalog struct {
	entries []Entry
}

// New builds a catalog from entries, normalizing keywords to lowercase and
// dropping entries without any usable fragment.
func New(entries []Entry) *Catalog {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		keywords := make([]string, 0, len(e.Keywords))
		for _, k := range e.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				keywords = append(keywords, k)
			}
		}
		if e.ID == "" || len(keywords) == 0 {
			continue
		}
		out = append(out, Entry{ID: e.ID, Keywords: keywords})
	}
	return &Catalog{entries: out}
}

// FromFrameworks snapshots enabled framework registry rows into a catalog.
func FromFrameworks(frameworks []models.Framework) *Catalog {
	entries := make([]Entry, 0, len(frameworks))
	for _, f := range frameworks {
		if !f.Enabled {
			continue
		}
		entries = append(entries, Entry{ID: f.Name, Keywords: f.KeywordList()})
	}
	return New(entries)
}

// Classify returns the identifiers of every framework with at least one
// keyword fragment contained in the filename, case-insensitive. A file may
// match any number of frameworks; no match yields an empty result. Order
// follows catalog order.
func (c *Catalog) Classify(filename string) []string {
	if filename == "" {
		return nil
	}
	lower := strings.ToLower(filename)

	var matched []string
	for _, e := range c.entries {
		for _, k := range e.Keywords {
			if strings.Contains(lower, k) {
				matched = append(matched, e.ID)
				break
			}
		}
	}
	return matched
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Defaults returns the built-in framework registry seeded on first start.
func Defaults() []models.Framework {
	return []models.Framework{
		{Name: "FFIEC", Keywords: "ffiec,federal financial institutions", Description: "Federal Financial Institutions Examination Council"},
		{Name: "NIST", Keywords: "nist,cybersecurity framework", Description: "NIST Cybersecurity Framework"},
		{Name: "ISO", Keywords: "iso 27001,international standards organization", Description: "ISO/IEC 27001"},
		{Name: "FTC", Keywords: "ftc safeguard,federal trade commission", Description: "FTC Safeguards Rule"},
		{Name: "GLBA", Keywords: "glba,gramm-leach-bliley", Description: "Gramm-Leach-Bliley Act"},
		{Name: "CIS", Keywords: "cis controls,center for internet security", Description: "CIS Critical Security Controls"},
	}
}
