package booking

import (
	"regexp"
	"strconv"
	"strings"
)

// Time labels come from two places: schedule columns in the tour catalog
// ("9:00 AM", "1:00 PM") and the pickup-time input ("08:30"). Both are
// reduced to minutes since midnight so they can be ordered.
var (
	twentyFourHourPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	twelveHourPattern     = regexp.MustCompile(`(\d+)(?::(\d+))?\s*(AM|PM)`)
)

// ConvertToMinutes converts a human-readable time label into minutes since
// midnight. A colon-form label ("13:00") is taken verbatim as 24-hour time
// and never AM/PM adjusted. A 12-hour label needs an AM/PM token; minutes
// default to 0 ("9 AM" is valid). Anything unparseable degrades to 0;
// the function is total and never returns an error.
func ConvertToMinutes(label string) int {
	str := strings.ToUpper(strings.TrimSpace(label))
	if str == "" {
		return 0
	}

	if twentyFourHourPattern.MatchString(str) {
		parts := strings.SplitN(str, ":", 2)
		hours, _ := strconv.Atoi(parts[0])
		minutes, _ := strconv.Atoi(parts[1])
		return hours*60 + minutes
	}

	match := twelveHourPattern.FindStringSubmatch(str)
	if match == nil {
		return 0
	}

	hours, _ := strconv.Atoi(match[1])
	minutes := 0
	if match[2] != "" {
		minutes, _ = strconv.Atoi(match[2])
	}

	// Standard 12-hour to 24-hour conversion, with 12 AM as midnight.
	if match[3] == "PM" && hours != 12 {
		hours += 12
	}
	if match[3] == "AM" && hours == 12 {
		hours = 0
	}

	return hours*60 + minutes
}
