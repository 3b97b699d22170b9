// Package config holds the immutable per-session capture configuration.
package config

import (
	"fmt"
	"time"
)

// Config describes a single capture session. It is constructed once
// from the command line and never mutated after Validate.
type Config struct {
	// Stream format, applied to every enabled device.
	Width  int
	Height int
	FPS    int

	// Flip rotates every polled frame by 180 degrees before use.
	Flip bool

	// Display opens one preview window per device.
	Display bool
	// ControlRoom sizes preview windows for the control-room monitor
	// instead of the lab monitor.
	ControlRoom bool

	// Record writes one MJPG AVI per device.
	Record bool

	// Devices restricts the session to these serials. Empty means all
	// discovered devices.
	Devices []string

	// Snapshot switches to still-image capture.
	Snapshot     bool
	Countdown    int // seconds before the first snapshot
	NumSnapshots int
	Interval     int // seconds between snapshots

	// SaveParams writes intrinsics.json into the session directory.
	SaveParams bool
}

func (c *Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("invalid width resolution: %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("invalid height resolution: %d", c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid frames per second: %d", c.FPS)
	}
	if c.Record && c.Snapshot {
		return fmt.Errorf("record is only valid in video mode, not snapshot mode")
	}
	if c.Snapshot {
		if c.NumSnapshots <= 0 {
			return fmt.Errorf("invalid snapshot count: %d", c.NumSnapshots)
		}
		if c.Interval < 0 {
			return fmt.Errorf("invalid snapshot interval: %d", c.Interval)
		}
		if c.Countdown < 0 {
			return fmt.Errorf("invalid snapshot countdown: %d", c.Countdown)
		}
	}

	return nil
}

// NeedsOutputDir reports whether the session writes anything under the
// recordings base directory.
func (c *Config) NeedsOutputDir() bool {
	return c.Record || c.Snapshot || c.SaveParams
}

func (c *Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Second
}
