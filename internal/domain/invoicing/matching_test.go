package invoicing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectsNamed(names ...string) []*Project {
	out := make([]*Project, 0, len(names))
	for _, n := range names {
		out = append(out, &Project{ProjectDetails: ProjectDetails{Name: n}})
	}
	return out
}

func TestMatchProject(t *testing.T) {
	projects := projectsNamed("Apollo", "West Horminics", "West")

	tests := []struct {
		name      string
		sheetName string
		wantName  string
		wantKind  MatchKind
	}{
		{"case and whitespace differences", "west horminics ", "West Horminics", MatchExact},
		{"exact match beats earlier substring", "WEST", "West", MatchExact},
		{"sheet name contains project name", "West Horminics Phase 2", "West Horminics", MatchSubstring},
		{"project name contains sheet name", "pollo", "Apollo", MatchSubstring},
		{"no match", "Zephyr", "", MatchNone},
		{"blank name never matches", "   ", "", MatchNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, kind := MatchProject(tt.sheetName, projects)
			assert.Equal(t, tt.wantKind, kind)
			if tt.wantName == "" {
				assert.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			assert.Equal(t, tt.wantName, p.Name)
		})
	}
}

func TestMatchProject_SkipsBlankProjectNames(t *testing.T) {
	p, kind := MatchProject("Apollo", projectsNamed("", "Apollo Labs"))
	require.NotNil(t, p)
	assert.Equal(t, "Apollo Labs", p.Name)
	assert.Equal(t, MatchSubstring, kind)
}

func TestGroupEntries(t *testing.T) {
	entries := []TimeEntry{
		{Row: 2, EmployeeName: "Asha", ProjectName: "Apollo", RatePerHour: dec("50"), Hours: dec("10")},
		{Row: 3, EmployeeName: "Ben", ProjectName: "West ", RatePerHour: dec("0"), Hours: dec("4")},
		{Row: 4, EmployeeName: "Chen", ProjectName: "Apollo", RatePerHour: dec("30"), Hours: dec("0")},
		{Row: 5, EmployeeName: "", ProjectName: "Apollo", RatePerHour: dec("30"), Hours: dec("1")},
		{Row: 6, EmployeeName: "Dana", ProjectName: "", RatePerHour: dec("30"), Hours: dec("1")},
		{Row: 7, EmployeeName: "Eli", ProjectName: "Apollo", RatePerHour: dec("0"), Hours: dec("0")},
	}

	groups := GroupEntries(entries)

	require.Len(t, groups, 2)
	assert.Equal(t, "Apollo", groups[0].ProjectName)
	assert.Len(t, groups[0].Entries, 2)
	assert.Equal(t, "West", groups[1].ProjectName)
	assert.Equal(t, MatchNone, groups[1].Match)
}

func TestMatchGroups(t *testing.T) {
	groups := GroupEntries([]TimeEntry{
		{EmployeeName: "Asha", ProjectName: "west horminics", RatePerHour: dec("50"), Hours: dec("10")},
		{EmployeeName: "Ben", ProjectName: "Unknown Co", RatePerHour: dec("50"), Hours: dec("10")},
	})

	matched := MatchGroups(groups, projectsNamed("West Horminics"))

	require.Len(t, matched, 2)
	assert.True(t, matched[0].Matched())
	assert.Equal(t, MatchExact, matched[0].Match)
	assert.False(t, matched[1].Matched())
	assert.False(t, groups[0].Matched(), "input groups are not modified")

	inputs := matched[0].EmployeeInputs()
	require.Len(t, inputs, 1)
	assert.Equal(t, "Asha", inputs[0].Name)
}
