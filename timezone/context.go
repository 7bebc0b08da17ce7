// Package timezone converts wall-clock dates and times of cultural venues
// into UTC instants and back. Every venue lives in a French administrative
// department, and each department maps to a fixed UTC offset: mainland
// France shares one offset, overseas departments each carry their own.
// Offsets are constants per department; no daylight-saving transitions are
// applied, so the local⇄UTC round trip is always unambiguous.
package timezone

import (
	"fmt"
	"time"
)

// Context resolves department codes to their fixed-offset locations.
// The zero value is not usable; construct one with DefaultContext or
// NewContext.
type Context struct {
	zones     map[string]*time.Location
	metropole *time.Location
}

// overseasOffsets lists the overseas department codes and their fixed UTC
// offsets in hours. Any two-character mainland code falls back to the
// metropolitan offset.
var overseasOffsets = map[string]int{
	"971": -4,  // Guadeloupe
	"972": -4,  // Martinique
	"973": -3,  // Guyane
	"974": 4,   // La Réunion
	"975": -3,  // Saint-Pierre-et-Miquelon
	"976": 3,   // Mayotte
	"977": -4,  // Saint-Barthélemy
	"978": -4,  // Saint-Martin
	"986": 12,  // Wallis-et-Futuna
	"987": -10, // Polynésie française
	"988": 11,  // Nouvelle-Calédonie
}

const metropoleOffsetHours = 1

// DefaultContext returns the Context carrying the standard French
// department table.
func DefaultContext() *Context {
	zones := make(map[string]*time.Location, len(overseasOffsets))
	for code, hours := range overseasOffsets {
		zones[code] = fixedZone(hours)
	}
	return &Context{
		zones:     zones,
		metropole: fixedZone(metropoleOffsetHours),
	}
}

// NewContext builds a Context from an explicit code→offset-hours table and
// a fallback offset for codes that look like mainland department codes.
func NewContext(offsets map[string]int, fallbackOffsetHours int) *Context {
	zones := make(map[string]*time.Location, len(offsets))
	for code, hours := range offsets {
		zones[code] = fixedZone(hours)
	}
	return &Context{
		zones:     zones,
		metropole: fixedZone(fallbackOffsetHours),
	}
}

func fixedZone(hours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+03d", hours), hours*3600)
}

// Location resolves a department code to its fixed-offset location.
// Codes present in the table resolve directly; any other syntactically
// valid mainland code (two digits, or 2A/2B for Corsica) resolves to the
// metropolitan offset. Everything else is an ErrInvalidDepartment error.
func (c *Context) Location(departmentCode string) (*time.Location, error) {
	if loc, ok := c.zones[departmentCode]; ok {
		return loc, nil
	}
	if isMainlandCode(departmentCode) {
		return c.metropole, nil
	}
	return nil, &Error{Type: ErrInvalidDepartment, Message: fmt.Sprintf("unknown department code %q", departmentCode)}
}

func isMainlandCode(code string) bool {
	if code == "2A" || code == "2B" {
		return true
	}
	if len(code) != 2 {
		return false
	}
	return code[0] >= '0' && code[0] <= '9' && code[1] >= '0' && code[1] <= '9'
}

// ToUTC converts a wall-clock date and time in the department's local zone
// to the corresponding UTC instant.
func (c *Context) ToUTC(d Date, t TimeOfDay, departmentCode string) (time.Time, error) {
	loc, err := c.Location(departmentCode)
	if err != nil {
		return time.Time{}, err
	}
	local := time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, loc)
	return local.UTC(), nil
}

// ToLocal converts a UTC instant back into the department's wall-clock date
// and time. For every valid input, ToLocal(ToUTC(d, t, code), code)
// returns (d, t) again.
func (c *Context) ToLocal(instant time.Time, departmentCode string) (Date, TimeOfDay, error) {
	loc, err := c.Location(departmentCode)
	if err != nil {
		return Date{}, TimeOfDay{}, err
	}
	local := instant.In(loc)
	d := Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
	t := TimeOfDay{Hour: local.Hour(), Minute: local.Minute()}
	return d, t, nil
}

// EndOfDayUTC returns the UTC instant of 23:59:59 local time on the given
// calendar day in the department's zone.
func (c *Context) EndOfDayUTC(d Date, departmentCode string) (time.Time, error) {
	loc, err := c.Location(departmentCode)
	if err != nil {
		return time.Time{}, err
	}
	local := time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 0, loc)
	return local.UTC(), nil
}
