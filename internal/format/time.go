// Package format renders timestamps and durations for terminal output.
package format

import (
	"strings"
	"time"

	"github.com/footprint-tools/cmdcore/internal/config"
)

var getConfig = config.Get

const defaultDate = "Jan 02"

// Layouts are the time.Format layouts picked by display_date and
// display_time.
type Layouts struct {
	Date         string
	ShortDate    string // Date without the year
	Clock        string
	ClockSeconds string
}

// presets maps display_date names to full and yearless layouts.
var presets = map[string][2]string{
	"mm/dd/yyyy": {"01/02/2006", "01/02"},
	"yyyy-mm-dd": {"2006-01-02", "01-02"},
	"dd/mm/yyyy": {"02/01/2006", "02/01"},
}

// Current reads the layouts from config. Any other display_date value is
// used as a Go layout.
func Current() Layouts {
	var l Layouts
	date, _ := getConfig("display_date")
	if date == "" {
		date = defaultDate
	}
	if p, ok := presets[date]; ok {
		l.Date, l.ShortDate = p[0], p[1]
	} else {
		l.Date, l.ShortDate = date, dropYear(date)
	}

	if clock, _ := getConfig("display_time"); clock == "12h" {
		l.Clock, l.ClockSeconds = "3:04 PM", "3:04:05 PM"
	} else {
		l.Clock, l.ClockSeconds = "15:04", "15:04:05"
	}
	return l
}

var yearTokens = strings.NewReplacer("2006", "", "/06", "", "-06", "", " 06", "")

func dropYear(layout string) string {
	short := strings.Trim(strings.TrimSpace(yearTokens.Replace(layout)), "/-")
	if short == "" {
		return defaultDate
	}
	return short
}

// DateTime is the full date and clock, e.g. "01/23/2024 15:04".
func DateTime(t time.Time) string {
	l := Current()
	return t.Format(l.Date + " " + l.Clock)
}

// DateTimeShort leaves out the year.
func DateTimeShort(t time.Time) string {
	l := Current()
	return t.Format(l.ShortDate + " " + l.Clock)
}

// Duration rounds d to a precision that suits its size.
func Duration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(100 * time.Microsecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
