// Package links loads the team bookmark workbook. It stands in for the
// spreadsheet the portal pages are sourced from: a YAML file mapping sheet
// names to link rows.
package links

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Link struct {
	Title       string `yaml:"title" json:"title"`
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Team        string `yaml:"team,omitempty" json:"team"`

	// Derived on read: external links open in a new tab, bare paths are
	// internal team routes, empty URLs go nowhere.
	Href   string `yaml:"-" json:"href"`
	Target string `yaml:"-" json:"target"`
}

// Workbook holds link rows per sheet, keyed case-insensitively by sheet name.
type Workbook struct {
	sheets map[string][]Link
}

// LoadWorkbook reads the YAML workbook at path.
func LoadWorkbook(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", path, err)
	}

	var raw map[string][]Link
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse workbook %s: %w", path, err)
	}

	sheets := make(map[string][]Link, len(raw))
	for name, rows := range raw {
		sheets[strings.ToLower(name)] = rows
	}
	return &Workbook{sheets: sheets}, nil
}

// Empty returns a workbook with no sheets, used when no workbook file is
// configured or readable.
func Empty() *Workbook {
	return &Workbook{sheets: map[string][]Link{}}
}

// LinksForTeams returns the link rows for the named sheets, in the given
// sheet order. Unknown sheets are skipped with a warning. Rows without a team
// fall back to their sheet name.
func (w *Workbook) LinksForTeams(names []string) []Link {
	var out []Link
	for _, name := range names {
		sheet := strings.ToLower(strings.TrimSpace(name))
		rows, ok := w.sheets[sheet]
		if !ok {
			slog.Warn("workbook sheet not found", "sheet", sheet)
			continue
		}
		for _, row := range rows {
			if row.Team == "" {
				row.Team = sheet
			}
			row.Href, row.Target = classify(row.URL)
			out = append(out, row)
		}
	}
	return out
}

func classify(rawURL string) (href, target string) {
	u := strings.TrimSpace(rawURL)
	switch {
	case strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://"):
		return u, "_blank"
	case u != "":
		return "/team/" + strings.Trim(u, "/"), "_self"
	default:
		return "#", "_self"
	}
}
