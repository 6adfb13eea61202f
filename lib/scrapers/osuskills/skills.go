package osuskills

import (
	"fmt"
	"math"
	"osucard-backend/lib/htmlutil"
	"osucard-backend/lib/textutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// SkillNames in the order the skills appear on a user page.
var SkillNames = []string{
	"stamina",
	"tenacity",
	"agility",
	"accuracy",
	"precision",
	"reaction",
	"memory",
}

type Skill struct {
	Value       int     `json:"value"`
	GlobalRank  int     `json:"globalRank"`
	CountryRank int     `json:"countryRank"`
	Percent     float64 `json:"percent"`
}

type SkillReport struct {
	// Skills always holds every name in SkillNames.
	Skills map[string]Skill `json:"skills"`
	// Tags are the rank titles shown under the username.
	Tags []string `json:"tags"`
}

// Percent maps a skill value onto [0, 100], 1000 and above is 100 and
// negative values are 0.
func Percent(value int) float64 {
	return math.Max(0, math.Min(float64(value)/1000*100, 100))
}

// ScrapeStructureError describes where a page diverged from the expected
// markup.
type ScrapeStructureError struct {
	Field    string
	Selector string
	// Index is the position of the offending element, -1 when the
	// problem is the element count.
	Index  int
	Want   int
	Got    int
	Reason string
}

func (e *ScrapeStructureError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf(
			"%s (%s): expected at least %d elements, got %d",
			e.Field, e.Selector, e.Want, e.Got,
		)
	}
	return fmt.Sprintf("%s (%s) [%d]: %s", e.Field, e.Selector, e.Index, e.Reason)
}

type skillField int

const (
	fieldValue skillField = iota
	fieldGlobalRank
	fieldCountryRank
)

type extraction struct {
	field    skillField
	name     string
	selector string
	// rank cells are prefixed with a "#"
	stripPrefix bool
}

var skillSchema = []extraction{
	{field: fieldValue, name: "value", selector: ".skillsList .skillValue"},
	{field: fieldGlobalRank, name: "globalRank", selector: "#ranks .skillTop .world", stripPrefix: true},
	{field: fieldCountryRank, name: "countryRank", selector: "#ranks .skillTop .country", stripPrefix: true},
}

const tagSelector = ".userRank .userRankTitle"

func noLeadingText(node *html.Node) string {
	return fmt.Sprintf("element has no leading text, content %q", strings.TrimSpace(htmlutil.GetText(node)))
}

func extractColumn(doc *goquery.Document, e extraction) ([]int, error) {
	sel := doc.Find(e.selector)
	if sel.Length() < len(SkillNames) {
		return nil, &ScrapeStructureError{
			Field:    e.name,
			Selector: e.selector,
			Index:    -1,
			Want:     len(SkillNames),
			Got:      sel.Length(),
		}
	}

	column := make([]int, len(SkillNames))
	for i := range SkillNames {
		node := sel.Get(i)
		text, ok := htmlutil.FirstText(node)
		if !ok {
			return nil, &ScrapeStructureError{
				Field:    e.name,
				Selector: e.selector,
				Index:    i,
				Reason:   noLeadingText(node),
			}
		}
		if e.stripPrefix {
			text = textutil.StripFirstRune(text)
		}
		value, err := textutil.ParseLeadingInt(text)
		if err != nil {
			return nil, &ScrapeStructureError{
				Field:    e.name,
				Selector: e.selector,
				Index:    i,
				Reason:   err.Error(),
			}
		}
		column[i] = value
	}
	return column, nil
}

func extractTags(doc *goquery.Document) ([]string, error) {
	tags := []string{}
	for i, node := range doc.Find(tagSelector).Nodes {
		text, ok := htmlutil.FirstText(node)
		if !ok {
			return nil, &ScrapeStructureError{
				Field:    "tags",
				Selector: tagSelector,
				Index:    i,
				Reason:   noLeadingText(node),
			}
		}
		tags = append(tags, strings.TrimSpace(text))
	}
	return tags, nil
}

// parseSkillReport reads a user page. Elements are matched by position, the
// n-th value, world rank and country rank all belong to SkillNames[n].
func parseSkillReport(doc *goquery.Document) (SkillReport, error) {
	columns := make([][]int, len(skillSchema))
	for _, e := range skillSchema {
		column, err := extractColumn(doc, e)
		if err != nil {
			return SkillReport{}, err
		}
		columns[e.field] = column
	}

	report := SkillReport{
		Skills: make(map[string]Skill, len(SkillNames)),
	}
	for i, name := range SkillNames {
		value := columns[fieldValue][i]
		report.Skills[name] = Skill{
			Value:       value,
			GlobalRank:  columns[fieldGlobalRank][i],
			CountryRank: columns[fieldCountryRank][i],
			Percent:     Percent(value),
		}
	}

	tags, err := extractTags(doc)
	if err != nil {
		return SkillReport{}, err
	}
	report.Tags = tags

	return report, nil
}
