package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Accepted time cell encodings, most specific first:
// "HH:MM:SS_mmm" (full), "MM:SS" (legacy two-field), bare integer millis.
var (
	fullTimeRe   = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})_(\d{1,3})$`)
	legacyTimeRe = regexp.MustCompile(`^(\d+):(\d{1,2})$`)
)

// ParseTimeCell converts one time cell into milliseconds. It accepts the
// full HH:MM:SS_mmm encoding, the legacy MM:SS form, and bare integer
// milliseconds. Anything else is an error; importers drop such rows.
func ParseTimeCell(cell string) (int64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, fmt.Errorf("empty time cell")
	}

	if m := fullTimeRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.ParseInt(m[1], 10, 64)
		mins, _ := strconv.ParseInt(m[2], 10, 64)
		secs, _ := strconv.ParseInt(m[3], 10, 64)
		ms, _ := strconv.ParseInt(m[4], 10, 64)
		if mins > 59 || secs > 59 {
			return 0, fmt.Errorf("invalid time cell: %s", cell)
		}
		return ((h*60+mins)*60+secs)*1000 + ms, nil
	}

	if m := legacyTimeRe.FindStringSubmatch(s); m != nil {
		mins, _ := strconv.ParseInt(m[1], 10, 64)
		secs, _ := strconv.ParseInt(m[2], 10, 64)
		if secs > 59 {
			return 0, fmt.Errorf("invalid time cell: %s", cell)
		}
		return (mins*60 + secs) * 1000, nil
	}

	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("invalid time cell: %s", cell)
	}
	return ms, nil
}

// FormatTimeMs renders milliseconds as HH:MM:SS_mmm, the encoding always
// emitted on export.
func FormatTimeMs(timeMs int64) string {
	if timeMs < 0 {
		timeMs = 0
	}
	ms := timeMs % 1000
	totalSec := timeMs / 1000
	return fmt.Sprintf("%02d:%02d:%02d_%03d", totalSec/3600, (totalSec/60)%60, totalSec%60, ms)
}

// ParseClockStart parses a wall-clock start time "H:MM" or "HH:MM" into
// minutes since midnight.
func ParseClockStart(s string) (int, error) {
	m := legacyTimeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid clock start %q: expected H:MM", s)
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if hours > 23 || mins > 59 {
		return 0, fmt.Errorf("invalid clock start %q: expected H:MM", s)
	}
	return hours*60 + mins, nil
}

// FormatClock renders the wall-clock cell for an elapsed timeline offset:
// start-of-day minutes plus elapsed whole minutes, wrapping at 24 hours,
// rendered as H:MM without a leading zero on the hour.
func FormatClock(startMin int, elapsedMs int64) string {
	total := (startMin + int(elapsedMs/60000)) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
