package flashcard

import (
	"fmt"
	"strings"
)

// Rating is the learner's self-assessed recall for a single review.
type Rating int

const (
	Again Rating = iota
	Hard
	Good
	Easy
)

var ratingNames = [...]string{
	Again: "again",
	Hard:  "hard",
	Good:  "good",
	Easy:  "easy",
}

// qualities maps each rating onto the 0-5 SM-2 quality scale.
var qualities = [...]int{
	Again: 0,
	Hard:  1,
	Good:  3,
	Easy:  5,
}

// ParseRating parses the lowercase rating name used by the API.
func ParseRating(s string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "again":
		return Again, nil
	case "hard":
		return Hard, nil
	case "good":
		return Good, nil
	case "easy":
		return Easy, nil
	}
	return 0, fmt.Errorf("invalid rating %q: must be one of again, hard, good, easy", s)
}

// Valid reports whether r is one of the four known ratings.
func (r Rating) Valid() bool {
	return r >= Again && r <= Easy
}

func (r Rating) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rating(%d)", int(r))
	}
	return ratingNames[r]
}

// Quality returns the SM-2 quality score: 0, 1, 3 or 5.
func (r Rating) Quality() int {
	if !r.Valid() {
		return 0
	}
	return qualities[r]
}

// Passed reports whether the rating counts as successful recall.
func (r Rating) Passed() bool {
	return r.Quality() >= PassingQuality
}

func (r Rating) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rating %d", int(r))
	}
	return []byte(ratingNames[r]), nil
}

func (r *Rating) UnmarshalText(b []byte) error {
	parsed, err := ParseRating(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
