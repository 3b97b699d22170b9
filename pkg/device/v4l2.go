package device

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	v4ldev "github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"
	"go.uber.org/zap"

	"camrig/pkg/utils"
)

const (
	devGlob     = "/dev/video*"
	pollTimeout = 5 * time.Second
)

type v4l2Device struct {
	serial string
	path   string
	dev    *v4ldev.Device
}

// V4L2Manager drives local V4L2 cameras through go4vl. Serials come
// from sysfs when the driver exposes them, otherwise the device node
// name stands in.
type V4L2Manager struct {
	width  int
	height int
	fps    int

	ctx    context.Context
	cancel context.CancelFunc

	enabled []v4l2Device
	logger  *zap.SugaredLogger
}

func NewV4L2Manager(width, height, fps int) *V4L2Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &V4L2Manager{
		width:  width,
		height: height,
		fps:    fps,
		ctx:    ctx,
		cancel: cancel,
		logger: utils.GetLogger(),
	}
}

func (m *V4L2Manager) EnableAllDevices() error {
	return m.enable(nil)
}

func (m *V4L2Manager) EnableDevices(serials []string) error {
	want := make(map[string]bool, len(serials))
	for _, s := range serials {
		want[s] = true
	}

	return m.enable(want)
}

// enable scans the device nodes and starts a stream on each one whose
// serial is wanted (nil means all). Missing requested serials are not
// an error here; the session validates the enabled set.
func (m *V4L2Manager) enable(want map[string]bool) error {
	paths, err := scanDeviceNodes()
	if err != nil {
		return err
	}

	for _, p := range paths {
		serial := readDeviceSerial(p)
		if want != nil && !want[serial] {
			continue
		}
		dev, err := v4ldev.Open(
			p,
			v4ldev.WithBufferSize(1),
			v4ldev.WithFPS(uint32(m.fps)),
			v4ldev.WithPixFormat(v4l2.PixFormat{
				PixelFormat: v4l2.PixelFmtRGB24,
				Width:       uint32(m.width),
				Height:      uint32(m.height),
			}),
		)
		if err != nil {
			m.logger.Warnf("skipping %s: %s", p, err)
			continue
		}
		if err := dev.Start(m.ctx); err != nil {
			m.logger.Warnf("skipping %s: start stream: %s", p, err)
			_ = dev.Close()
			continue
		}
		m.enabled = append(m.enabled, v4l2Device{serial: serial, path: p, dev: dev})
		m.logger.Infof("enabled device %s (%s)", serial, p)
	}

	return nil
}

func (m *V4L2Manager) EnabledDevices() []string {
	serials := make([]string, 0, len(m.enabled))
	for _, d := range m.enabled {
		serials = append(serials, d.serial)
	}

	return serials
}

func (m *V4L2Manager) PollFrames() (map[string]Frame, error) {
	frames := make(map[string]Frame, len(m.enabled))
	for _, d := range m.enabled {
		select {
		case data, ok := <-d.dev.GetOutput():
			if !ok {
				return nil, fmt.Errorf("device %s: stream closed", d.serial)
			}
			buf := make([]byte, len(data))
			copy(buf, data)
			frames[d.serial] = Frame{Data: buf, Width: m.width, Height: m.height}
		case <-time.After(pollTimeout):
			return nil, fmt.Errorf("device %s: no frame within %s", d.serial, pollTimeout)
		}
	}

	return frames, nil
}

// Intrinsics reports nominal parameters: principal point at the image
// center and a focal length assuming a ~53 degree horizontal field of
// view. V4L2 exposes no calibration, so these are placeholders in the
// vendor dump format.
func (m *V4L2Manager) Intrinsics() (map[string]string, error) {
	if len(m.enabled) == 0 {
		return nil, fmt.Errorf("no enabled devices")
	}
	cx := float64(m.width-1) / 2
	cy := float64(m.height-1) / 2
	focal := float64(m.width)

	dumps := make(map[string]string, len(m.enabled))
	for _, d := range m.enabled {
		dumps[d.serial] = FormatIntrinsicsDump(m.width, m.height, cx, cy, focal, focal)
	}

	return dumps, nil
}

func (m *V4L2Manager) DisableStreams() error {
	m.cancel()
	var firstErr error
	for _, d := range m.enabled {
		if err := d.dev.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", d.serial, err)
		}
	}
	m.enabled = nil

	return firstErr
}

// scanDeviceNodes lists /dev/video* sorted by device number.
func scanDeviceNodes() ([]string, error) {
	matches, err := filepath.Glob(devGlob)
	if err != nil {
		return nil, fmt.Errorf("scan device nodes: %w", err)
	}
	sort.Slice(matches, func(i, j int) bool {
		return deviceNumber(matches[i]) < deviceNumber(matches[j])
	})

	return matches, nil
}

func deviceNumber(path string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(path), "video"))
	if err != nil {
		return -1
	}

	return n
}

// readDeviceSerial resolves a stable identifier for a device node from
// sysfs, falling back to the node name when the driver exposes none.
func readDeviceSerial(path string) string {
	name := filepath.Base(path)
	data, err := os.ReadFile(filepath.Join("/sys/class/video4linux", name, "device", "serial"))
	if err == nil {
		if s := strings.TrimSpace(string(data)); s != "" {
			return s
		}
	}

	return name
}
