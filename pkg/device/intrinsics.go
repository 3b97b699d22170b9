package device

import (
	"fmt"
	"regexp"
	"strings"
)

// Intrinsics holds the optical calibration of one device as written to
// intrinsics.json. Values stay strings: they are passed through from
// the vendor dump, not interpreted.
type Intrinsics struct {
	Fx string `json:"fx"`
	Fy string `json:"fy"`
	Cx string `json:"cx"`
	Cy string `json:"cy"`
	D1 string `json:"d1"`
	D2 string `json:"d2"`
	D3 string `json:"d3"`
	D4 string `json:"d4"`
	D5 string `json:"d5"`
}

var bracketGroups = regexp.MustCompile(`\[(.*?)\]`)

// ParseIntrinsics extracts calibration values from a vendor parameter
// dump such as
//
//	[ 1280x720 p[639.5 359.5] f[925.00 925.00] Brown Conrady [0 0 0 0 0] ]
//
// The format is positional: everything after the first 'p' is scanned
// for bracketed groups, of which the first holds the principal point,
// the second the focal lengths and the third the five distortion
// coefficients. Field order must be preserved for compatibility with
// downstream calibration scripts.
func ParseIntrinsics(dump string) (Intrinsics, error) {
	parts := strings.SplitN(dump, "p", 2)
	if len(parts) < 2 {
		return Intrinsics{}, fmt.Errorf("malformed intrinsics dump: %q", dump)
	}
	groups := bracketGroups.FindAllStringSubmatch(parts[1], -1)
	if len(groups) < 3 {
		return Intrinsics{}, fmt.Errorf("intrinsics dump has %d bracket groups, want at least 3: %q", len(groups), dump)
	}

	principal := strings.Fields(groups[0][1])
	focal := strings.Fields(groups[1][1])
	coeffs := strings.Fields(groups[2][1])
	if len(principal) < 2 || len(focal) < 2 || len(coeffs) < 5 {
		return Intrinsics{}, fmt.Errorf("intrinsics dump has short fields: %q", dump)
	}

	return Intrinsics{
		Fx: focal[0],
		Fy: focal[1],
		Cx: principal[0],
		Cy: principal[1],
		D1: coeffs[0],
		D2: coeffs[1],
		D3: coeffs[2],
		D4: coeffs[3],
		D5: coeffs[4],
	}, nil
}

// FormatIntrinsicsDump renders nominal parameters in the same text
// format ParseIntrinsics consumes. Used by device managers that have no
// calibrated values to report.
func FormatIntrinsicsDump(width, height int, cx, cy, fx, fy float64) string {
	return fmt.Sprintf("[ %dx%d p[%.2f %.2f] f[%.2f %.2f] Brown Conrady [0 0 0 0 0] ]",
		width, height, cx, cy, fx, fy)
}
