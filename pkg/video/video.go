// Package video writes MJPG-encoded AVI files, one per device.
package video

import (
	"github.com/icza/mjpeg"

	"camrig/pkg/device"
)

type Writer struct {
	width  int
	height int
	fps    int

	cnt int
	aw  mjpeg.AviWriter
}

func NewWriter(path string, width, height, fps int) (*Writer, error) {
	aw, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, err
	}

	return &Writer{
		width:  width,
		height: height,
		fps:    fps,
		aw:     aw,
	}, nil
}

// Add JPEG-encodes the frame and appends it to the AVI.
func (w *Writer) Add(f device.Frame) error {
	jpg, err := f.JPEG()
	if err != nil {
		return err
	}
	if err := w.aw.AddFrame(jpg); err != nil {
		return err
	}
	w.cnt++

	return nil
}

func (w *Writer) Close() error {
	return w.aw.Close()
}

func (w *Writer) FrameCount() int {
	return w.cnt
}
