package metadata

import (
	"reflect"
	"testing"

	"docrag/internal/domain"
)

func testTable() []DomainKeywords {
	return []DomainKeywords{
		{Tag: "corrosion", Keywords: []string{"corrosion", "rust"}},
		{Tag: "hull", Keywords: []string{"hull", "plating"}},
		{Tag: "manpower", Keywords: []string{"attrition", "retention", "staffing"}},
	}
}

func TestTitle(t *testing.T) {
	elements := []domain.Element{
		{Type: "NarrativeText", Text: "preamble"},
		{Type: "Title", Text: "  Corrosion Survey 2021  "},
		{Type: "Title", Text: "Second Title"},
	}

	if got := Title(elements, "fallback.pdf"); got != "Corrosion Survey 2021" {
		t.Errorf("Title = %q, want first non-empty title", got)
	}
}

func TestTitleFallback(t *testing.T) {
	elements := []domain.Element{
		{Type: "Title", Text: "   "},
		{Type: "NarrativeText", Text: "no titles here"},
	}

	if got := Title(elements, "report.pdf"); got != "report.pdf" {
		t.Errorf("Title = %q, want fallback", got)
	}
}

func TestFullText(t *testing.T) {
	elements := []domain.Element{
		{Type: "Title", Text: " First "},
		{Type: "NarrativeText", Text: ""},
		{Type: "NarrativeText", Text: "Second"},
	}

	if got := FullText(elements); got != "First\n\nSecond" {
		t.Errorf("FullText = %q", got)
	}
}

func TestFullTextEmpty(t *testing.T) {
	if got := FullText(nil); got != "" {
		t.Errorf("FullText(nil) = %q, want empty", got)
	}
}

func TestDomainTagsScoring(t *testing.T) {
	text := "Corrosion was found near the hull; corrosion treatment is scheduled."

	got := DomainTags(text, testTable())
	want := []string{"corrosion", "hull"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DomainTags = %v, want %v", got, want)
	}
}

func TestDomainTagsCapAndTieOrder(t *testing.T) {
	// every tag scores exactly once: ties keep table order, cap at 3
	text := "rust on the plating caused attrition"

	got := DomainTags(text, append(testTable(),
		DomainKeywords{Tag: "extra", Keywords: []string{"plating"}}))
	want := []string{"corrosion", "hull", "manpower"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DomainTags = %v, want %v", got, want)
	}
}

func TestDomainTagsNoHits(t *testing.T) {
	if got := DomainTags("nothing relevant", testTable()); len(got) != 0 {
		t.Errorf("DomainTags = %v, want empty", got)
	}
}

func TestDocType(t *testing.T) {
	cases := []struct {
		name string
		text string
		path string
		want string
	}{
		{"presentation extension wins", "quarterly report", "slides.pptx", "presentation"},
		{"briefing before report", "briefing note on the report", "a.pdf", "briefing"},
		{"technical analysis", "technical assessment of the system", "a.pdf", "technical_analysis"},
		{"research", "the methodology section follows", "a.pdf", "research"},
		{"report", "executive summary", "a.pdf", "report"},
		{"no match", "unrelated content", "a.pdf", "other"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DocType(tc.text, tc.path); got != tc.want {
				t.Errorf("DocType(%q, %q) = %q, want %q", tc.text, tc.path, got, tc.want)
			}
		})
	}
}

func TestYearMaximumPolicy(t *testing.T) {
	year, ok := Year("surveyed in 1998, refitted 2015, cited 2003")
	if !ok {
		t.Fatal("expected a year")
	}
	if year != 2015 {
		t.Errorf("Year = %d, want the maximum 2015", year)
	}
}

func TestYearBounds(t *testing.T) {
	if _, ok := Year("serial 18750 and 21000 are not years"); ok {
		t.Error("expected no year outside 1900-2099")
	}
	if _, ok := Year("no digits at all"); ok {
		t.Error("expected no year")
	}
}
