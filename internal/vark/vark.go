// Package vark scores the Visual/Auditory/Reading/Kinesthetic learning-style
// questionnaire and aggregates dominant styles across a group of students.
package vark

import (
	"fmt"
	"math"
	"strings"
)

// Style is one of the four VARK learning styles.
type Style string

const (
	Visual      Style = "visual"
	Auditory    Style = "auditory"
	Reading     Style = "reading"
	Kinesthetic Style = "kinesthetic"
)

// Styles lists every style in tie-break order.
var Styles = []Style{Visual, Auditory, Reading, Kinesthetic}

// ParseStyle parses a lowercase style name.
func ParseStyle(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid learning style %q", s)
	}
	return st, nil
}

func (s Style) Valid() bool {
	switch s {
	case Visual, Auditory, Reading, Kinesthetic:
		return true
	}
	return false
}

// Counts holds a tally per style.
type Counts struct {
	Visual      int `json:"visual"`
	Auditory    int `json:"auditory"`
	Reading     int `json:"reading"`
	Kinesthetic int `json:"kinesthetic"`
}

// Get returns the tally for s.
func (c Counts) Get(s Style) int {
	switch s {
	case Visual:
		return c.Visual
	case Auditory:
		return c.Auditory
	case Reading:
		return c.Reading
	case Kinesthetic:
		return c.Kinesthetic
	}
	return 0
}

func (c *Counts) add(s Style) bool {
	switch s {
	case Visual:
		c.Visual++
	case Auditory:
		c.Auditory++
	case Reading:
		c.Reading++
	case Kinesthetic:
		c.Kinesthetic++
	default:
		return false
	}
	return true
}

// Percentages converts counts to whole percentages of total.
func (c Counts) Percentages(total int) Counts {
	if total <= 0 {
		total = 1
	}
	pct := func(n int) int {
		return int(math.Round(float64(n) / float64(total) * 100))
	}
	return Counts{
		Visual:      pct(c.Visual),
		Auditory:    pct(c.Auditory),
		Reading:     pct(c.Reading),
		Kinesthetic: pct(c.Kinesthetic),
	}
}

// Dominant returns the style with the highest count. Ties go to the style
// listed first in Styles.
func (c Counts) Dominant() Style {
	best := Styles[0]
	for _, s := range Styles[1:] {
		if c.Get(s) > c.Get(best) {
			best = s
		}
	}
	return best
}

// Result is a scored questionnaire.
type Result struct {
	Counts      Counts `json:"counts"`
	Percentages Counts `json:"percentages"`
	Primary     Style  `json:"primary_style"`
}

// Score tallies one answer per questionnaire item. The number of answers must
// match the questionnaire length.
func Score(answers []Style) (Result, error) {
	if len(answers) != len(Questionnaire) {
		return Result{}, fmt.Errorf("expected %d answers, got %d", len(Questionnaire), len(answers))
	}
	var c Counts
	for i, a := range answers {
		if !c.add(a) {
			return Result{}, fmt.Errorf("answer %d: invalid learning style %q", i+1, a)
		}
	}
	return Result{
		Counts:      c,
		Percentages: c.Percentages(len(answers)),
		Primary:     c.Dominant(),
	}, nil
}

// Distribution describes how dominant styles spread across a group.
type Distribution struct {
	DominantCounts Counts `json:"dominant_counts"`
	Percentages    Counts `json:"percentages"`
	TotalStudents  int    `json:"total_students"`
	Assessed       int    `json:"assessed"`
}

// Distribute counts dominant styles over totalStudents. Students without an
// assessment contribute to the total only; unknown styles are ignored.
func Distribute(dominant []Style, totalStudents int) Distribution {
	var c Counts
	assessed := 0
	for _, s := range dominant {
		if c.add(s) {
			assessed++
		}
	}
	return Distribution{
		DominantCounts: c,
		Percentages:    c.Percentages(totalStudents),
		TotalStudents:  totalStudents,
		Assessed:       assessed,
	}
}
