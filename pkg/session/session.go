// Package session orchestrates a capture run: it validates the
// configuration, enables the cameras, prepares the output tree, warms
// up exposure and drives either the snapshot loop or the continuous
// streaming loop until done or interrupted.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"camrig/pkg/config"
	"camrig/pkg/device"
	"camrig/pkg/layout"
	"camrig/pkg/utils"
	"camrig/pkg/utils/ps"
	"camrig/pkg/video"
)

const (
	warmUpPolls = 25
	warmUpDelay = 100 * time.Millisecond

	intrinsicsFile = "intrinsics.json"

	// Recording with less free space than this gets a warning.
	lowDiskBytes = 1 << 30
)

// Display is the window sink the streaming and snapshot loops render
// into. Implemented by pkg/display for real monitors.
type Display interface {
	Open(serial string, p layout.Placement) error
	Show(serial string, f device.Frame) error
	Close() error
}

// FramePublisher receives the latest JPEG of every device, e.g. for the
// HTTP live preview.
type FramePublisher interface {
	Publish(serial string, jpg []byte)
}

type Option func(*Manager)

func WithClock(c clockwork.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

func WithDisplay(d Display) Option {
	return func(m *Manager) { m.display = d }
}

// WithBaseDir overrides the recordings base directory.
func WithBaseDir(dir string) Option {
	return func(m *Manager) { m.baseDir = dir }
}

// WithNTPServer enables a wall-clock sanity check against the given
// server before the session directory is named.
func WithNTPServer(server string) Option {
	return func(m *Manager) { m.ntpServer = server }
}

// Manager owns all per-session resources: the enabled device set, the
// output directory, and the writer and window handles, keyed by device
// serial.
type Manager struct {
	cfg     config.Config
	devices device.Manager

	clock     clockwork.Clock
	logger    *zap.SugaredLogger
	layout    *layout.Layout
	display   Display
	publisher FramePublisher
	ntpServer string

	baseDir   string
	outputDir string

	enabled []string
	writers map[string]*video.Writer
}

// New validates the configuration, enables the devices, prepares the
// output directories and warms up exposure. Any failure aborts before
// capture starts; there is no retry.
func New(cfg config.Config, devices device.Manager, opts ...Option) (*Manager, error) {
	m := &Manager{
		cfg:     cfg,
		devices: devices,
		clock:   clockwork.NewRealClock(),
		logger:  utils.GetLogger(),
		layout:  layout.New(cfg.ControlRoom),
		baseDir: "recordings",
		writers: make(map[string]*video.Writer),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	if m.cfg.Display && m.display == nil {
		return nil, fmt.Errorf("display requested but no window sink provided")
	}

	if err := m.enableDevices(); err != nil {
		return nil, err
	}

	if err := m.prepareOutputDir(); err != nil {
		return nil, err
	}
	m.reportDiskSpace()
	m.checkClock()

	m.logger.Info("warming up")
	if err := m.warmUp(); err != nil {
		return nil, err
	}

	if m.cfg.SaveParams {
		if err := m.saveIntrinsics(); err != nil {
			return nil, err
		}
	}

	m.logger.Infof("loaded camera manager %d %d %d", m.cfg.Width, m.cfg.Height, m.cfg.FPS)

	return m, nil
}

// Run drives exactly one of the two capture loops, or nothing when
// neither display, record nor snapshot was requested. Teardown runs on
// every exit path.
func (m *Manager) Run(ctx context.Context) error {
	defer m.teardown()

	switch {
	case m.cfg.Snapshot:
		return m.snapshotLoop(ctx)
	case m.cfg.Display || m.cfg.Record:
		return m.streamLoop(ctx)
	default:
		m.logger.Info("neither display, record nor snapshot requested, nothing to do")
		return nil
	}
}

// SetPublisher attaches a live-preview sink. Must be called before Run;
// the publisher needs the enabled device set, which only exists after
// New, so this cannot be an Option.
func (m *Manager) SetPublisher(p FramePublisher) {
	m.publisher = p
}

// EnabledDevices lists the serials active in this session.
func (m *Manager) EnabledDevices() []string {
	return m.enabled
}

// OutputDir returns the session directory, or "" when the session
// writes nothing.
func (m *Manager) OutputDir() string {
	return m.outputDir
}

func (m *Manager) enableDevices() error {
	var err error
	if len(m.cfg.Devices) > 0 {
		err = m.devices.EnableDevices(m.cfg.Devices)
	} else {
		err = m.devices.EnableAllDevices()
	}
	if err != nil {
		return fmt.Errorf("enable devices: %w", err)
	}

	m.enabled = m.devices.EnabledDevices()
	if len(m.enabled) == 0 {
		return fmt.Errorf("camera initialisation failed: no available devices")
	}
	for _, serial := range m.cfg.Devices {
		if !contains(m.enabled, serial) {
			return fmt.Errorf("device %s is not connected or failed to connect", serial)
		}
	}

	return nil
}

func (m *Manager) prepareOutputDir() error {
	if err := os.MkdirAll(m.baseDir, dirPerm); err != nil {
		return fmt.Errorf("create recordings directory: %w", err)
	}
	if !m.cfg.NeedsOutputDir() {
		return nil
	}

	dir, err := createSessionDir(m.baseDir, m.clock.Now())
	if err != nil {
		return err
	}
	m.outputDir = dir

	return nil
}

func (m *Manager) reportDiskSpace() {
	status, err := ps.DiskStatus(m.baseDir)
	if err != nil {
		m.logger.Warnf("disk status: %s", err)
		return
	}
	m.logger.Infof("recordings volume: %s free of %s (%.0f%% used)",
		humanize.IBytes(status.Free), humanize.IBytes(status.Total), status.UsedPercent)
	if m.cfg.Record && status.Free < lowDiskBytes {
		m.logger.Warnf("low disk space, recording may fill the volume")
	}
}

// checkClock warns when the local clock drifts from NTP, since session
// directories are named from it. Log-only, never fatal.
func (m *Manager) checkClock() {
	if m.ntpServer == "" || !m.cfg.NeedsOutputDir() {
		return
	}
	offset, err := utils.ClockOffset(m.ntpServer)
	if err != nil {
		m.logger.Warnf("ntp check against %s failed: %s", m.ntpServer, err)
		return
	}
	if offset > 2*time.Second || offset < -2*time.Second {
		m.logger.Warnf("local clock is %s off from %s, session timestamps will drift", offset, m.ntpServer)
		return
	}
	m.logger.Debugf("clock offset from %s: %s", m.ntpServer, offset)
}

// warmUp discards a fixed number of polls so auto-exposure settles
// before any frame is kept.
func (m *Manager) warmUp() error {
	for i := 0; i < warmUpPolls; i++ {
		if _, err := m.devices.PollFrames(); err != nil {
			return fmt.Errorf("warm-up poll: %w", err)
		}
		m.clock.Sleep(warmUpDelay)
	}

	return nil
}

func (m *Manager) saveIntrinsics() error {
	dumps, err := m.devices.Intrinsics()
	if err != nil {
		return fmt.Errorf("get intrinsics: %w", err)
	}

	clean := make(map[string]device.Intrinsics, len(dumps))
	for serial, dump := range dumps {
		m.logger.Infof("camera %s parameters %s", serial, dump)
		in, err := device.ParseIntrinsics(dump)
		if err != nil {
			return fmt.Errorf("device %s: %w", serial, err)
		}
		clean[serial] = in
	}

	f, err := os.Create(filepath.Join(m.outputDir, intrinsicsFile))
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(clean)
}

// snapshotLoop takes a fixed number of stills per device at a fixed
// interval, with an optional countdown first. An interrupt stops after
// the current frame; teardown still runs.
func (m *Manager) snapshotLoop(ctx context.Context) error {
	for _, serial := range m.enabled {
		if err := os.Mkdir(filepath.Join(m.outputDir, serial), dirPerm); err != nil {
			return fmt.Errorf("create device directory: %w", err)
		}
	}
	m.logger.Infof("saving snapshots to %s", m.outputDir)

	if m.cfg.Countdown > 0 {
		m.logger.Info("taking snapshots in...")
		for i := m.cfg.Countdown; i > 0; i-- {
			if !m.sleep(ctx, time.Second) {
				m.logger.Info("interrupted during countdown")
				return nil
			}
			m.logger.Infof("%d", i)
		}
	}

	if m.cfg.Display {
		if err := m.openWindows(); err != nil {
			return err
		}
	}

	for snap := 0; snap < m.cfg.NumSnapshots; snap++ {
		if ctx.Err() != nil {
			m.logger.Info("interrupted, stopping snapshots")
			return nil
		}
		frames, err := m.devices.PollFrames()
		if err != nil {
			return fmt.Errorf("poll frames: %w", err)
		}
		for serial, frame := range frames {
			final := m.finalFrame(frame)
			name := filepath.Join(m.outputDir, serial, fmt.Sprintf("%d.jpg", snap))
			if err := final.WriteJPEGFile(name); err != nil {
				return fmt.Errorf("write snapshot %s: %w", name, err)
			}
			if err := m.present(serial, final); err != nil {
				return err
			}
		}
		if !m.sleep(ctx, m.cfg.IntervalDuration()) {
			m.logger.Info("interrupted, stopping snapshots")
			return nil
		}
	}

	return nil
}

// streamLoop records and/or displays frames until the context is
// canceled by the operator.
func (m *Manager) streamLoop(ctx context.Context) error {
	if m.cfg.Record {
		if err := m.openWriters(); err != nil {
			return err
		}
	}
	if m.cfg.Display {
		if err := m.openWindows(); err != nil {
			return err
		}
	}

	for {
		if ctx.Err() != nil {
			m.logger.Info("interrupt received, stopping stream")
			return nil
		}
		frames, err := m.devices.PollFrames()
		if err != nil {
			return fmt.Errorf("poll frames: %w", err)
		}
		for serial, frame := range frames {
			final := m.finalFrame(frame)
			if m.cfg.Record {
				if err := m.writers[serial].Add(final); err != nil {
					return fmt.Errorf("write frame for %s: %w", serial, err)
				}
			}
			if err := m.present(serial, final); err != nil {
				return err
			}
		}
	}
}

func (m *Manager) finalFrame(f device.Frame) device.Frame {
	if m.cfg.Flip {
		return f.Flip()
	}
	return f
}

// present shows the frame in its window and feeds the live preview.
func (m *Manager) present(serial string, f device.Frame) error {
	if m.cfg.Display {
		if err := m.display.Show(serial, f); err != nil {
			return fmt.Errorf("display frame for %s: %w", serial, err)
		}
	}
	if m.publisher != nil {
		jpg, err := f.JPEG()
		if err != nil {
			return fmt.Errorf("encode preview frame for %s: %w", serial, err)
		}
		m.publisher.Publish(serial, jpg)
	}

	return nil
}

func (m *Manager) openWindows() error {
	m.logger.Info("displaying video outputs")
	for _, serial := range m.enabled {
		if err := m.display.Open(serial, m.layout.Placement(serial)); err != nil {
			return fmt.Errorf("open window for %s: %w", serial, err)
		}
	}

	return nil
}

func (m *Manager) openWriters() error {
	for _, serial := range m.enabled {
		dir := filepath.Join(m.outputDir, serial)
		if err := os.Mkdir(dir, dirPerm); err != nil {
			return fmt.Errorf("create device directory: %w", err)
		}
		m.logger.Infof("writing videos to %s", dir)
		w, err := video.NewWriter(filepath.Join(dir, "1.avi"), m.cfg.Width, m.cfg.Height, m.cfg.FPS)
		if err != nil {
			return fmt.Errorf("open writer for %s: %w", serial, err)
		}
		m.writers[serial] = w
	}

	return nil
}

// teardown releases every writer and window and disables the device
// streams. Safe to call with nothing open.
func (m *Manager) teardown() {
	m.logger.Info("closing streams...")
	for serial, w := range m.writers {
		if err := w.Close(); err != nil {
			m.logger.Errorf("close writer for %s: %s", serial, err)
		}
		delete(m.writers, serial)
	}
	if m.display != nil {
		if err := m.display.Close(); err != nil {
			m.logger.Errorf("close windows: %s", err)
		}
	}
	if err := m.devices.DisableStreams(); err != nil {
		m.logger.Errorf("disable streams: %s", err)
	}
	if m.outputDir != "" {
		if size, err := ps.DirDiskUsage(m.outputDir); err == nil {
			m.logger.Infof("session wrote %s to %s", humanize.IBytes(uint64(size)), m.outputDir)
		}
	}
	m.logger.Info("done")
}

// sleep waits for d on the session clock, returning false when the
// context was canceled first.
func (m *Manager) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-m.clock.After(d):
		return true
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
