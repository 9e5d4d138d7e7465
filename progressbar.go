package dflog

import (
	"os"
	"time"

	"golang.org/x/crypto/ssh/terminal"
	pb "gopkg.in/cheggaaa/pb.v1"
)

// NewProgressBar returns a terminal progress bar tracking bytes of the
// image scanned, or a NullProgressBar if stderr isn't a terminal.
func NewProgressBar(prefix string) ProgressBar {
	if !terminal.IsTerminal(int(os.Stderr.Fd())) {
		return NullProgressBar{}
	}
	bar := pb.New(0).Prefix(prefix)
	bar.ShowCounters = true
	bar.Output = os.Stderr
	bar.SetRefreshRate(time.Millisecond * 250)
	return DefaultProgressBar{bar}
}

// DefaultProgressBar wraps github.com/cheggaaa/pb and implements ProgressBar.
type DefaultProgressBar struct {
	*pb.ProgressBar
}

func (d DefaultProgressBar) SetTotal(total int) { d.ProgressBar.SetTotal(total) }
func (d DefaultProgressBar) Set(n int)          { d.ProgressBar.Set(n) }
func (d DefaultProgressBar) Start()             { d.ProgressBar.Start() }
func (d DefaultProgressBar) Finish()            { d.ProgressBar.Finish() }
