package invoicing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TimeEntry is one usable spreadsheet row.
type TimeEntry struct {
	Row          int
	EmployeeName string
	ProjectName  string
	RatePerHour  decimal.Decimal
	Hours        decimal.Decimal
	Amount       decimal.Decimal
}

// Usable reports whether the entry names a project and an employee and has
// either a rate or hours.
func (e TimeEntry) Usable() bool {
	if strings.TrimSpace(e.ProjectName) == "" || strings.TrimSpace(e.EmployeeName) == "" {
		return false
	}
	return e.RatePerHour.IsPositive() || e.Hours.IsPositive()
}

// MatchKind records how an import group was matched to a project.
type MatchKind string

const (
	MatchNone      MatchKind = "none"
	MatchExact     MatchKind = "exact"
	MatchSubstring MatchKind = "substring"
)

// EntryGroup is the set of entries that share a spreadsheet project name.
type EntryGroup struct {
	ProjectName string
	Entries     []TimeEntry
	Project     *Project
	Match       MatchKind
}

// Matched reports whether the group will be merged.
func (g EntryGroup) Matched() bool {
	return g.Project != nil
}

// EmployeeInputs converts the group's entries into employee lines.
func (g EntryGroup) EmployeeInputs() []EmployeeInput {
	out := make([]EmployeeInput, 0, len(g.Entries))
	for _, e := range g.Entries {
		out = append(out, EmployeeInput{
			Name:        strings.TrimSpace(e.EmployeeName),
			RatePerHour: e.RatePerHour,
			Hours:       e.Hours,
		})
	}
	return out
}

// GroupEntries groups usable entries by trimmed project name, keeping the
// order in which names first appear.
func GroupEntries(entries []TimeEntry) []EntryGroup {
	index := map[string]int{}
	var groups []EntryGroup
	for _, e := range entries {
		if !e.Usable() {
			continue
		}
		name := strings.TrimSpace(e.ProjectName)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, EntryGroup{ProjectName: name, Match: MatchNone})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// MatchProject finds the project a spreadsheet name refers to. A
// case-insensitive exact match wins; otherwise the first project whose name
// contains, or is contained in, the spreadsheet name.
func MatchProject(name string, projects []*Project) (*Project, MatchKind) {
	needle := matchKey(name)
	if needle == "" {
		return nil, MatchNone
	}
	for _, p := range projects {
		if matchKey(p.Name) == needle {
			return p, MatchExact
		}
	}
	for _, p := range projects {
		key := matchKey(p.Name)
		if key == "" {
			continue
		}
		if strings.Contains(key, needle) || strings.Contains(needle, key) {
			return p, MatchSubstring
		}
	}
	return nil, MatchNone
}

// MatchGroups resolves every group against projects.
func MatchGroups(groups []EntryGroup, projects []*Project) []EntryGroup {
	out := make([]EntryGroup, len(groups))
	for i, g := range groups {
		g.Project, g.Match = MatchProject(g.ProjectName, projects)
		out[i] = g
	}
	return out
}

func matchKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
