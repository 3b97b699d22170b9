// Package display shows frames in OpenCV windows, one per device,
// placed according to the lab layout.
package display

import (
	"fmt"

	"gocv.io/x/gocv"

	"camrig/pkg/device"
	"camrig/pkg/layout"
)

// Windows owns the preview windows of a capture session, keyed by
// device serial.
type Windows struct {
	windows map[string]*gocv.Window
}

func NewWindows() *Windows {
	return &Windows{windows: make(map[string]*gocv.Window)}
}

// Open creates the window for a device and applies its layout
// placement. Windows are created resizable so the explicit size wins
// over the frame size.
func (w *Windows) Open(serial string, p layout.Placement) error {
	if _, ok := w.windows[serial]; ok {
		return fmt.Errorf("window for device %s already open", serial)
	}
	win := gocv.NewWindow(p.Title)
	win.ResizeWindow(p.Size.Width, p.Size.Height)
	if p.Positioned {
		win.MoveWindow(p.X, p.Y)
	}
	w.windows[serial] = win

	return nil
}

// Show renders a frame in the device's window. The one-millisecond
// WaitKey doubles as the GUI event pump.
func (w *Windows) Show(serial string, f device.Frame) error {
	win, ok := w.windows[serial]
	if !ok {
		return fmt.Errorf("no window for device %s", serial)
	}
	mat, err := gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8UC3, bgr(f.Data))
	if err != nil {
		return fmt.Errorf("frame to mat: %w", err)
	}
	defer mat.Close()

	win.IMShow(mat)
	win.WaitKey(1)

	return nil
}

// bgr returns the pixel bytes with red and blue swapped. Frames carry
// RGB24 but OpenCV renders Mats under its BGR convention.
func bgr(data []byte) []byte {
	out := make([]byte, len(data))
	for i := 0; i+2 < len(data); i += 3 {
		out[i] = data[i+2]
		out[i+1] = data[i+1]
		out[i+2] = data[i]
	}

	return out
}

// Close destroys every open window. Safe to call with none open.
func (w *Windows) Close() error {
	var firstErr error
	for serial, win := range w.windows {
		if err := win.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close window for %s: %w", serial, err)
		}
		delete(w.windows, serial)
	}

	return firstErr
}
