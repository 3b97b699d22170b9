package main

import (
	"context"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"camrig/pkg/config"
	"camrig/pkg/device"
	"camrig/pkg/display"
	"camrig/pkg/preview"
	"camrig/pkg/session"
	"camrig/pkg/utils"
	"camrig/pkg/webdav"
)

var (
	width       = flag.Int("width", 1280, "camera width resolution")
	height      = flag.Int("height", 720, "camera height resolution")
	fps         = flag.Int("fps", 15, "camera frames per second")
	flip        = flag.Bool("flip", false, "rotate the image 180 degrees")
	show        = flag.Bool("display", false, "display stream outputs")
	controlRoom = flag.Bool("control_room", false, "size output windows for the control room monitor (default lab monitor)")
	record      = flag.Bool("record", false, "enable video writers")
	devices     = flag.StringSlice("devices", nil, "serials of the devices to run, e.g. --devices 830112071467,830112071329")
	snapshot    = flag.Bool("snapshot", false, "turn on snapshot mode")
	countdown   = flag.Int("countdown", 3, "countdown in seconds before taking a snapshot")
	numSnaps    = flag.Int("num_snapshots", 1, "take several pictures")
	interval    = flag.Int("interval", 1, "pause in seconds between taking snapshots")
	saveParams  = flag.Bool("save_params", false, "write the enabled cameras' parameters to the output directory")

	recordingsDir = flag.String("recordings-dir", "recordings", "base directory for session output")
	previewPort   = flag.Int("preview-port", 0, "serve a live MJPEG preview on this port (0 disables)")
	webdavPort    = flag.Int("webdav-port", 0, "share the recordings directory over webdav on this port (0 disables)")
	ntpServer     = flag.String("ntp-server", "", "check the local clock against this NTP server before a session")

	logger *zap.SugaredLogger
)

func init() {
	logger = utils.GetLogger()
	flag.Parse()
}

func main() {
	defer logger.Sync()

	cfg := config.Config{
		Width:        *width,
		Height:       *height,
		FPS:          *fps,
		Flip:         *flip,
		Display:      *show,
		ControlRoom:  *controlRoom,
		Record:       *record,
		Devices:      *devices,
		Snapshot:     *snapshot,
		Countdown:    *countdown,
		NumSnapshots: *numSnaps,
		Interval:     *interval,
		SaveParams:   *saveParams,
	}

	ctx, stop := utils.SignalContext(context.Background())
	defer stop()

	opts := []session.Option{
		session.WithBaseDir(*recordingsDir),
	}
	if cfg.Display {
		opts = append(opts, session.WithDisplay(display.NewWindows()))
	}
	if *ntpServer != "" {
		opts = append(opts, session.WithNTPServer(*ntpServer))
	}

	var pv *preview.Server
	mgr, err := session.New(cfg, device.NewV4L2Manager(cfg.Width, cfg.Height, cfg.FPS), opts...)
	if err != nil {
		logger.Fatal(err)
	}

	if *previewPort > 0 {
		pv = preview.NewServer(*previewPort, mgr.EnabledDevices())
		pv.Start()
		defer pv.Shutdown()
		mgr.SetPublisher(pv)
	}
	if *webdavPort > 0 {
		webdav.Serve(ctx, *webdavPort, *recordingsDir)
	}

	if err := mgr.Run(ctx); err != nil {
		logger.Fatal(err)
	}
}
