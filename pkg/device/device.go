// Package device defines the contract between the capture session and
// the camera hardware, plus a V4L2-backed implementation. Vendor SDK
// wrappers (device discovery, hardware sync, calibrated intrinsics)
// stay behind the Manager interface.
package device

// Frame is one polled color image: packed 24-bit pixels, row major.
type Frame struct {
	Data   []byte
	Width  int
	Height int
}

// Flip returns the frame mirrored horizontally then flipped vertically,
// which amounts to a 180 degree rotation. The input is not modified.
func (f Frame) Flip() Frame {
	out := make([]byte, len(f.Data))
	n := len(f.Data) / 3
	for i := 0; i < n; i++ {
		src := i * 3
		dst := (n - 1 - i) * 3
		out[dst] = f.Data[src]
		out[dst+1] = f.Data[src+1]
		out[dst+2] = f.Data[src+2]
	}

	return Frame{Data: out, Width: f.Width, Height: f.Height}
}

// Manager enumerates, enables and polls the physical cameras.
type Manager interface {
	// EnableAllDevices starts streams on every discovered device.
	EnableAllDevices() error

	// EnableDevices starts streams on the devices with the given
	// serials only.
	EnableDevices(serials []string) error

	// EnabledDevices lists the serials confirmed active.
	EnabledDevices() []string

	// PollFrames returns the current color frame of every enabled
	// device, keyed by serial.
	PollFrames() (map[string]Frame, error)

	// Intrinsics returns the vendor parameter dump of every enabled
	// device, keyed by serial.
	Intrinsics() (map[string]string, error)

	// DisableStreams stops all streams and releases the devices.
	DisableStreams() error
}
