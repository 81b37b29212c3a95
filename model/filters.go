package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MealTypeAll is the meal type that disables meal filtering.
const MealTypeAll = "All"

// DefaultTopN is how many predictions the API is asked for.
const DefaultTopN = 25

// TotalTimeOptions are the total-time choices offered to the user, in minutes.
// Zero means any duration.
var TotalTimeOptions = []int{0, 15, 30, 60, 90, 120}

// Filters holds the search criteria chosen by the user.
type Filters struct {
	Ingredients []string `json:"ingredients"`
	MealType    string   `json:"mealType"`
	TotalTime   int      `json:"totalTime"`
}

// DefaultFilters returns filters with no ingredients and no restrictions.
func DefaultFilters() Filters {
	return Filters{
		Ingredients: []string{},
		MealType:    MealTypeAll,
		TotalTime:   0,
	}
}

// Clone returns a deep copy of f.
func (f Filters) Clone() Filters {
	out := f
	out.Ingredients = append([]string{}, f.Ingredients...)
	return out
}

// Query converts the filters to the predict request shape. "All" and an
// empty meal type become nil, as does a zero total time.
func (f Filters) Query() PredictQuery {
	q := PredictQuery{Ingredients: append([]string{}, f.Ingredients...)}
	if f.MealType != "" && f.MealType != MealTypeAll {
		meal := f.MealType
		q.MealType = &meal
	}
	if f.TotalTime > 0 {
		total := f.TotalTime
		q.TotalTime = &total
	}
	return q
}

// PredictQuery is the filter part of a predict request.
type PredictQuery struct {
	Ingredients []string
	MealType    *string
	TotalTime   *int
}

// NormalizeIngredients trims every entry, drops empty ones and removes
// duplicates while keeping first-seen order.
func NormalizeIngredients(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// minutesPattern matches a bare number of minutes like "30".
var minutesPattern = regexp.MustCompile(`^\d+$`)

// ParseTotalTime parses a total-time flag into minutes.
//
// Accepted forms:
//   - "", "any", "0": no limit (returns 0)
//   - "30": minutes
//   - "45m", "1h", "1h30m": Go duration syntax, whole minutes only
func ParseTotalTime(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "any" {
		return 0, nil
	}

	if minutesPattern.MatchString(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid total time: %s", s)
		}
		return n, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid total time format: %s (expected minutes or a duration, e.g., 30, 45m, 1h30m)", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("total time must be non-negative")
	}
	if d%time.Minute != 0 {
		return 0, fmt.Errorf("total time must be whole minutes: %s", s)
	}
	return int(d / time.Minute), nil
}

// BuildFilters constructs Filters from CLI flags.
func BuildFilters(ingredients []string, mealType, totalTime string) (Filters, error) {
	f := DefaultFilters()
	f.Ingredients = NormalizeIngredients(ingredients)

	if mt := strings.TrimSpace(mealType); mt != "" {
		f.MealType = mt
	}

	if totalTime != "" {
		minutes, err := ParseTotalTime(totalTime)
		if err != nil {
			return f, fmt.Errorf("failed to parse --total-time flag: %w", err)
		}
		f.TotalTime = minutes
	}

	return f, nil
}
