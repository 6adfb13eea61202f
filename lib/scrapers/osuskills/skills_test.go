package osuskills

import (
	"bytes"
	_ "embed"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/user_page.html
var userPage []byte

func parseDoc(t testing.TB, contents []byte) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(contents))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParseSkillReport(t *testing.T) {
	report, err := parseSkillReport(parseDoc(t, userPage))
	require.NoError(t, err)

	expected := SkillReport{
		Skills: map[string]Skill{
			"stamina":   {Value: 1043, GlobalRank: 1, CountryRank: 1, Percent: 100},
			"tenacity":  {Value: 870, GlobalRank: 15, CountryRank: 3, Percent: Percent(870)},
			"agility":   {Value: 500, GlobalRank: 2043, CountryRank: 120, Percent: 50},
			"accuracy":  {Value: 999, GlobalRank: 8, CountryRank: 2, Percent: Percent(999)},
			"precision": {Value: 0, GlobalRank: 99999, CountryRank: 4567, Percent: 0},
			"reaction":  {Value: 725, GlobalRank: 310, CountryRank: 44, Percent: Percent(725)},
			"memory":    {Value: 5000, GlobalRank: 1, CountryRank: 1, Percent: 100},
		},
		Tags: []string{"Legendary Aim", "Speed Demon"},
	}
	if diff := cmp.Diff(expected, report); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestPercent(t *testing.T) {
	testCases := []struct {
		value    int
		expected float64
	}{
		{value: 0, expected: 0},
		{value: 500, expected: 50},
		{value: 999, expected: 99.9},
		{value: 1000, expected: 100},
		{value: 1001, expected: 100},
		{value: 5000, expected: 100},
		{value: -1, expected: 0},
		{value: -250, expected: 0},
	}

	for _, test := range testCases {
		require.InDelta(t, test.expected, Percent(test.value), 1e-9, "value %d", test.value)
	}

	for value := -5000; value <= 20000; value += 37 {
		percent := Percent(value)
		require.GreaterOrEqual(t, percent, 0.0)
		require.LessOrEqual(t, percent, 100.0)
	}
}

func TestParseSkillReportNegativeValue(t *testing.T) {
	page := strings.Replace(string(userPage), `>870<`, `>-250<`, 1)
	report, err := parseSkillReport(parseDoc(t, []byte(page)))
	require.NoError(t, err)

	tenacity := report.Skills["tenacity"]
	require.Equal(t, -250, tenacity.Value)
	require.Equal(t, 0.0, tenacity.Percent)
	for name, skill := range report.Skills {
		require.GreaterOrEqual(t, skill.Percent, 0.0, name)
		require.LessOrEqual(t, skill.Percent, 100.0, name)
	}
}

func TestParseSkillReportNoTags(t *testing.T) {
	page := strings.Replace(string(userPage), `class="userRank"`, `class="userRankHidden"`, 1)
	report, err := parseSkillReport(parseDoc(t, []byte(page)))
	require.NoError(t, err)
	require.NotNil(t, report.Tags)
	require.Empty(t, report.Tags)
	require.Len(t, report.Skills, len(SkillNames))
}

func TestParseSkillReportStructure(t *testing.T) {
	testCases := []struct {
		name     string
		page     string
		field    string
		index    int
		got      int
		hasCount bool
		reason   string
	}{
		{
			name:     "six values",
			page:     strings.Replace(string(userPage), `<output class="skillValue">5000</output>`, ``, 1),
			field:    "value",
			index:    -1,
			got:      6,
			hasCount: true,
		},
		{
			name:     "no values",
			page:     `<html><body><p>user not found</p></body></html>`,
			field:    "value",
			index:    -1,
			got:      0,
			hasCount: true,
		},
		{
			name:     "missing world ranks",
			page:     strings.ReplaceAll(string(userPage), `class="world"`, `class="planet"`),
			field:    "globalRank",
			index:    -1,
			got:      0,
			hasCount: true,
		},
		{
			name:  "unparseable value",
			page:  strings.Replace(string(userPage), `>870<`, `>n/a<`, 1),
			field: "value",
			index: 1,
		},
		{
			name:  "rank without digits",
			page:  strings.Replace(string(userPage), `<span class="country">#3</span>`, `<span class="country">-</span>`, 1),
			field: "countryRank",
			index: 1,
		},
		{
			name:  "nested markup",
			page:  strings.Replace(string(userPage), `<output class="skillValue">500</output>`, `<output class="skillValue"><b>500</b></output>`, 1),
			field:  "value",
			index:  2,
			reason: `content "500"`,
		},
		{
			name:  "empty tag",
			page:  strings.Replace(string(userPage), `<span class="userRankTitle">Speed Demon </span>`, `<span class="userRankTitle"></span>`, 1),
			field: "tags",
			index: 1,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseSkillReport(parseDoc(t, []byte(test.page)))
			require.Error(t, err)

			structErr, ok := err.(*ScrapeStructureError)
			require.True(t, ok, "expected *ScrapeStructureError, got %T", err)
			require.Equal(t, test.field, structErr.Field)
			require.Equal(t, test.index, structErr.Index)
			if test.hasCount {
				require.Equal(t, len(SkillNames), structErr.Want)
				require.Equal(t, test.got, structErr.Got)
			}
			if test.reason != "" {
				require.Contains(t, structErr.Reason, test.reason)
			}
			require.NotEmpty(t, structErr.Error())
		})
	}
}
