package utils

import (
	"time"

	"github.com/beevik/ntp"
)

// ClockOffset queries the given NTP server and returns the local clock
// offset. Session directories are named from the local clock, so a
// large offset means mislabeled recordings.
func ClockOffset(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}

	return resp.ClockOffset, nil
}
