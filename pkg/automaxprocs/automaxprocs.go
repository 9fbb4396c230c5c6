package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gaze-network/public-sale/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

var undo = func() {}

// Init sets GOMAXPROCS to the container CPU quota, if any. A GOMAXPROCS environment variable wins.
func Init() error {
	log := logger.With(
		slogx.String("package", "automaxprocs"),
		slogx.Int("prev_maxprocs", runtime.GOMAXPROCS(0)),
	)
	printf := func(format string, v ...any) {
		attrs := []slog.Attr{}
		if val, ok := utils.Optional(v); ok {
			if n, ok := val.(int); ok {
				attrs = append(attrs, slogx.Int("set_maxprocs", n))
			}
		}
		log.LogAttrs(context.Background(), slog.LevelInfo, fmt.Sprintf(format, v...), attrs...)
	}

	revert, err := maxprocs.Set(maxprocs.Logger(printf), maxprocs.Min(1))
	if err != nil {
		return errors.WithStack(err)
	}
	undo = revert
	return nil
}

// Undo restores the GOMAXPROCS value from before Init.
func Undo() {
	undo()
}
