package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"personal-planner/models"
)

// ResolveDate turns user input into a day. It accepts yyyy-MM-dd as well as
// natural language such as "tomorrow" or "next friday". Empty input is today.
func ResolveDate(input string, now time.Time, loc *time.Location) (models.DateKey, error) {
	if loc == nil {
		loc = time.UTC
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return models.DateKeyOf(now, loc), nil
	}

	if key, err := models.ParseDateKey(input); err == nil {
		return key, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now.In(loc),
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return models.DateKey{}, fmt.Errorf("could not parse date %q", input)
	}

	// the parser answers in CurrentTime's zone
	return models.DateKeyOf(result.Time, result.Time.Location()), nil
}

// ResolveMonth parses yyyy-MM, falling back to ResolveDate for anything else
func ResolveMonth(input string, now time.Time, loc *time.Location) (models.DateKey, error) {
	if key, err := models.ParseMonthKey(strings.TrimSpace(input)); err == nil {
		return key, nil
	}
	key, err := ResolveDate(input, now, loc)
	if err != nil {
		return models.DateKey{}, err
	}
	return key.MonthKey(), nil
}
