package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a time.Duration read from YAML or ATTENTIOND_* variables.
// Values use Go duration syntax ("10s", "1m30s"); a bare integer is taken
// as seconds, so ATTENTIOND_SERVER_SHUTDOWN_TIMEOUT=15 works.
type Duration time.Duration

// UnmarshalText parses a duration and rejects negative values.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))

	var parsed time.Duration
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		parsed = time.Duration(secs) * time.Second
	} else if parsed, err = time.ParseDuration(s); err != nil {
		return fmt.Errorf("invalid duration %q: want a value like \"10s\" or a number of seconds", s)
	}

	if parsed < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", s)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText renders d in Go duration syntax. encoding/json uses it too.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// Duration converts d back to a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
