package device

import (
	"bytes"
	"io"

	"camrig/pkg/utils"
)

// JPEG encodes the frame at the default capture quality.
func (f Frame) JPEG() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.EncodeJPEG(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (f Frame) EncodeJPEG(dst io.Writer) error {
	return utils.EncodeJPEG(utils.DecodeRGB(f.Data, f.Width, f.Height), dst, utils.DefaultJPEGQuality)
}

// WriteJPEGFile saves the frame as a JPEG file.
func (f Frame) WriteJPEGFile(path string) error {
	return utils.EncodeJPEGFile(utils.DecodeRGB(f.Data, f.Width, f.Height), path, utils.DefaultJPEGQuality)
}
