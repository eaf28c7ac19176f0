package insights

import (
	"strings"
	"testing"
)

const sampleReport = `# Monthly Spending Report

Intro paragraph.

## Where the money went

Mostly food.

### Food

Details.

## Recommendations

- Cook more.
`

func TestOutline(t *testing.T) {
	headings, err := Outline(sampleReport)
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}

	want := []Heading{
		{1, "Monthly Spending Report"},
		{2, "Where the money went"},
		{3, "Food"},
		{2, "Recommendations"},
	}
	if len(headings) != len(want) {
		t.Fatalf("len(headings) = %d, want %d", len(headings), len(want))
	}
	for i, w := range want {
		if headings[i] != w {
			t.Errorf("headings[%d] = %+v, want %+v", i, headings[i], w)
		}
	}
}

func TestOutline_Empty(t *testing.T) {
	headings, err := Outline("")
	if err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	if len(headings) != 0 {
		t.Errorf("Outline(\"\") = %v, want empty", headings)
	}
}

func TestRender(t *testing.T) {
	out, err := Render(sampleReport, 80)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Monthly Spending Report") {
		t.Errorf("rendered output lost the title:\n%s", out)
	}
}
