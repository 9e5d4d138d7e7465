package dflog

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log is the package-wide diagnostic sink. It discards output by default;
// callers (typically the CLI's --verbose flag) point it at stderr.
var Log = logrus.New()

func init() {
	Log.SetOutput(io.Discard)
}
