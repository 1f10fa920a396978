package grid

import (
	"strconv"
	"strings"
)

// ParseTimeOfDay converts a free text wall clock time such as "7:05 PM" or "19:05" to
// minutes since midnight. Values that cannot be parsed result in 0
func ParseTimeOfDay(value string) int {
	minutes, ok := parseClock(value)
	if !ok {
		return 0
	}
	return minutes
}

func parseClock(value string) (int, bool) {
	value = strings.ToUpper(strings.Join(strings.Fields(value), ""))
	value = strings.ReplaceAll(value, ".", "")
	if value == "" {
		return 0, false
	}

	meridiem := ""
	switch {
	case strings.HasSuffix(value, "AM"), strings.HasSuffix(value, "PM"):
		meridiem = value[len(value)-2:]
		value = value[:len(value)-2]
	case strings.HasSuffix(value, "A"), strings.HasSuffix(value, "P"):
		meridiem = value[len(value)-1:] + "M"
		value = value[:len(value)-1]
	}

	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute := 0
	if len(parts) > 1 {
		if len(parts[1]) != 2 {
			return 0, false
		}
		minute, err = strconv.Atoi(parts[1])
		if err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
	} else if meridiem == "" {
		return 0, false
	}
	if len(parts) == 3 {
		second, err := strconv.Atoi(parts[2])
		if err != nil || second < 0 || second > 59 {
			return 0, false
		}
	}

	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return 0, false
		}
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	}

	return hour*60 + minute, true
}
