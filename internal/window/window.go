// Package window resolves the since/before bounds accepted by the transaction
// listing: absolute RFC 3339 timestamps, relative durations such as "7d" or
// "36h", and (for since only) transaction ids.
package window

import (
	"fmt"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// Bound identifies which end of the window is being resolved.
type Bound int

const (
	Since Bound = iota
	Before
)

func (b Bound) String() string {
	if b == Before {
		return "before"
	}
	return "since"
}

// Resolve turns value into the form the API expects. Relative durations are
// subtracted from now and rendered in UTC. An empty value stays empty.
func Resolve(value string, bound Bound, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return value, nil
	}
	if bound == Since && strings.HasPrefix(value, "tx_") {
		return value, nil
	}
	d, err := str2duration.ParseDuration(value)
	if err != nil {
		return "", fmt.Errorf("%s: %q is neither an RFC 3339 timestamp nor a duration like 7d", bound, value)
	}
	if d < 0 {
		return "", fmt.Errorf("%s: duration %q must not be negative", bound, value)
	}
	return now.Add(-d).UTC().Format(time.RFC3339), nil
}
