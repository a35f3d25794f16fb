package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Chart coordinates are fixed to Seoul. The city label is only displayed.
const (
	Latitude  = 37.5665
	Longitude = 126.9780
)

// ChartZone is the fixed UTC offset of the chart location.
var ChartZone = time.FixedZone("KST", 9*3600)

// BirthData is a validated ChartRequest.
type BirthData struct {
	Year, Month, Day int
	Hour, Minute     int
	City             string
}

// ParseBirthData validates a "YYYY-MM-DD" date and an "HH:MM" time.
// Components need not be zero padded ("1990-5-15", "9:05"), and a seconds
// component on the time is ignored.
func ParseBirthData(req ChartRequest) (BirthData, error) {
	y, m, d, err := ParseDate(req.Date)
	if err != nil {
		return BirthData{}, err
	}
	parts, ok := splitInts(req.Time, ":")
	if !ok || len(parts) < 2 || len(parts) > 3 ||
		parts[0] > 23 || parts[1] > 59 || (len(parts) == 3 && parts[2] > 59) {
		return BirthData{}, fmt.Errorf("%w: time %q", ErrInvalidBirthData, req.Time)
	}
	return BirthData{
		Year:   y,
		Month:  m,
		Day:    d,
		Hour:   parts[0],
		Minute: parts[1],
		City:   strings.TrimSpace(req.City),
	}, nil
}

// ParseDate splits a year-month-day date into calendar components and
// rejects dates that do not exist, such as 1990-02-30.
func ParseDate(s string) (year, month, day int, err error) {
	parts, ok := splitInts(s, "-")
	if !ok || len(parts) != 3 || parts[0] < 1 || parts[0] > 9999 {
		return 0, 0, 0, fmt.Errorf("%w: date %q", ErrInvalidBirthData, s)
	}
	t := time.Date(parts[0], time.Month(parts[1]), parts[2], 0, 0, 0, 0, time.UTC)
	if int(t.Month()) != parts[1] || t.Day() != parts[2] {
		return 0, 0, 0, fmt.Errorf("%w: date %q", ErrInvalidBirthData, s)
	}
	return parts[0], parts[1], parts[2], nil
}

// splitInts parses sep-separated non-negative decimal components.
func splitInts(s, sep string) ([]int, bool) {
	fields := strings.Split(strings.TrimSpace(s), sep)
	out := make([]int, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || len(f) > 4 {
			return nil, false
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || strings.ContainsAny(f, "+-") {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// Local is the birth moment at the chart location.
func (b BirthData) Local() time.Time {
	return time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Minute, 0, 0, ChartZone)
}

// Label formats the birth data for summaries.
func (b BirthData) Label() string {
	s := fmt.Sprintf("%04d-%02d-%02d %02d:%02d", b.Year, b.Month, b.Day, b.Hour, b.Minute)
	if b.City != "" {
		s += " (" + b.City + ")"
	}
	return s
}
