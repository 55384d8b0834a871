package ds1307

import (
	"encoding/hex"
)

// Logger receives the bus trace when Config.Debug is set. *log.Logger
// satisfies it.
//
// A single call may carry a multi-line hex dump.
type Logger interface {
	Printf(format string, args ...interface{})
}

// discardLogger drops the trace of a Dev without Config.Debug.
type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

func getLogger(cfg Config) Logger {
	if cfg.Debug != nil {
		return cfg.Debug
	}
	return discardLogger{}
}

// hexDump prints register bytes in `hexdump -C` layout, framed by blank
// lines. Formatting only happens when a logger actually prints it.
type hexDump []byte

func (h hexDump) String() string {
	return "\n" + hex.Dump(h) + "\n"
}
