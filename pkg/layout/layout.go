// Package layout places preview windows on a 3x3 grid that roughly
// mirrors where the cameras hang in the lab.
package layout

import "fmt"

type Size struct {
	Width  int
	Height int
}

// Placement is the resolved window geometry for one device. Positioned
// is false for serials outside the hand-authored table; those windows
// get no fixed position and keep the raw serial in the title.
type Placement struct {
	Title      string
	Size       Size
	X, Y       int
	Positioned bool
}

type cell struct {
	Col int
	Row int
}

// Window sizes for the two monitors the tool is used with. The lab
// monitor runs at full resolution, the control-room one is smaller.
var (
	labWinSize         = Size{Width: 1920 / 3, Height: 1080 / 3}
	controlRoomWinSize = Size{Width: 1920 / 5, Height: 1080 / 5}
)

// camNames gives known cameras a short stable name so window titles and
// positions survive re-plugging. Update this table when cameras are
// moved around in the lab.
var camNames = map[string]string{
	"830112071467": "5",
	"830112071329": "4",
	"831612070394": "2",
	"831612071422": "3",
	"831612071440": "8",
	"831612071526": "X",
}

// gridCells maps camera names to 3x3 grid cells (column, row).
var gridCells = map[string]cell{
	"2": {2, 2},
	"3": {2, 1},
	"4": {2, 0},
	"5": {1, 2},
	"6": {1, 1},
	"7": {0, 2},
	"8": {0, 0},
}

type Layout struct {
	winSize Size
}

func New(controlRoom bool) *Layout {
	size := labWinSize
	if controlRoom {
		size = controlRoomWinSize
	}

	return &Layout{winSize: size}
}

func (l *Layout) WindowSize() Size {
	return l.winSize
}

// Placement resolves the window title, size and pixel position for a
// device serial. Grid cells convert to pixels by multiplying with the
// window size.
func (l *Layout) Placement(serial string) Placement {
	name, known := camNames[serial]
	if !known {
		name = serial
	}
	p := Placement{
		Title: fmt.Sprintf("Camera %s", name),
		Size:  l.winSize,
	}
	c, ok := gridCells[name]
	if !ok {
		return p
	}
	p.X = c.Col * l.winSize.Width
	p.Y = c.Row * l.winSize.Height
	p.Positioned = true

	return p
}
