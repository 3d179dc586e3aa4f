package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Filter selection errors
var (
	ErrInvalidYear  = errors.New("year must be an integer or \"all\"")
	ErrInvalidMonth = errors.New("month must be 1-12 or \"all\"")
	ErrInvalidDay   = errors.New("date must be YYYY-MM-DD")
	ErrEmptyPeriod  = errors.New("period start is after its end")
)

// FilterSelection narrows a snapshot. Zero values mean "all" for every field.
// From and To are inclusive day keys (YYYY-MM-DD).
type FilterSelection struct {
	Year        int    `json:"year,omitempty"`
	Month       int    `json:"month,omitempty"`
	Site        string `json:"site,omitempty"`
	Team        string `json:"team,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
}

// IsAll reports whether the selection imposes no constraint
func (s FilterSelection) IsAll() bool {
	return s == FilterSelection{}
}

// FilterOptions are the distinct values offered for each filter field
type FilterOptions struct {
	Years        []int    `json:"years"`
	Months       []int    `json:"months"`
	Sites        []string `json:"sites"`
	Teams        []string `json:"teams"`
	ServiceTypes []string `json:"serviceTypes"`
	Period       DateSpan `json:"period"`
}

// DateSpan is an inclusive range of day keys. Both ends are empty when there
// are no dated records.
type DateSpan struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// IsAllValue reports whether a raw filter value means "no constraint".
func IsAllValue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all", "todos", "todas":
		return true
	}
	return false
}

// ParseFilterSelection builds a selection from raw string inputs such as query parameters.
// Site and team are matched against canonical values, so they are trimmed and upper-cased here;
// team codes also lose inner whitespace.
func ParseFilterSelection(year, month, site, team string) (FilterSelection, error) {
	var sel FilterSelection

	if !IsAllValue(year) {
		y, err := strconv.Atoi(strings.TrimSpace(year))
		if err != nil {
			return FilterSelection{}, fmt.Errorf("%w: %q", ErrInvalidYear, year)
		}
		sel.Year = y
	}

	if !IsAllValue(month) {
		m, err := strconv.Atoi(strings.TrimSpace(month))
		if err != nil || m < 1 || m > 12 {
			return FilterSelection{}, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
		}
		sel.Month = m
	}

	if !IsAllValue(site) {
		sel.Site = strings.ToUpper(strings.TrimSpace(site))
	}
	if !IsAllValue(team) {
		sel.Team = strings.ToUpper(strings.Join(strings.Fields(team), ""))
	}

	return sel, nil
}

// WithServiceType returns s narrowed to one service type. Values are compared
// in canonical form: trimmed, single-spaced and upper-cased.
func (s FilterSelection) WithServiceType(v string) FilterSelection {
	if IsAllValue(v) {
		s.ServiceType = ""
		return s
	}
	s.ServiceType = CanonicalServiceType(v)
	return s
}

// CanonicalServiceType is the comparison form of a service type value.
func CanonicalServiceType(v string) string {
	return strings.ToUpper(strings.Join(strings.Fields(v), " "))
}

// WithPeriod returns s narrowed to the inclusive day range [from, to]. Either
// end may be "all" to leave it open.
func (s FilterSelection) WithPeriod(from, to string) (FilterSelection, error) {
	var err error
	if s.From, err = parseDayKey(from); err != nil {
		return FilterSelection{}, err
	}
	if s.To, err = parseDayKey(to); err != nil {
		return FilterSelection{}, err
	}
	if s.From != "" && s.To != "" && s.From > s.To {
		return FilterSelection{}, fmt.Errorf("%w: %s > %s", ErrEmptyPeriod, s.From, s.To)
	}
	return s, nil
}

func parseDayKey(v string) (string, error) {
	if IsAllValue(v) {
		return "", nil
	}
	d, err := ParseDay(v, time.UTC)
	if err != nil {
		return "", err
	}
	return d.Format(DayLayout), nil
}

// ParseDay parses a YYYY-MM-DD day at midnight in loc.
func ParseDay(v string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DayLayout, strings.TrimSpace(v), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, v)
	}
	return d, nil
}
