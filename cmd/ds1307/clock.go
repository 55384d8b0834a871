package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/northvolt/go-ds1307/ds1307"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type clockConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
}

func (c *clockConfig) Exec(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return flag.ErrHelp
	}
	if c.rootConfig.verbose {
		fmt.Fprintf(c.err, "clock %s\n", args[0])
	}

	d, closer, err := newDS1307(c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	return runClock(d, args[0], c.out)
}

func runClock(d *ds1307.Dev, action string, w io.Writer) error {
	switch action {
	case "halt":
		if err := d.Halt(); err != nil {
			return err
		}
	case "start":
		if err := d.Start(); err != nil {
			return err
		}
	case "status":
	default:
		return fmt.Errorf("ds1307: unknown clock action %q", action)
	}

	running, err := d.IsRunning()
	if err != nil {
		return err
	}
	if running {
		fmt.Fprintln(w, "Oscillator is running")
	} else {
		fmt.Fprintln(w, "Oscillator is halted")
	}
	return nil
}

func newClockCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := clockConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("ds1307 clock", flag.ExitOnError)
	rootConfig.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "clock",
		ShortUsage: "clock halt|start|status",
		ShortHelp:  "Halts, starts or reports the oscillator.",
		LongHelp: `Halts, starts or reports the oscillator.

A halted clock keeps its time and date but does not count. The oscillator is
halted when the device powers up for the first time.`,
		FlagSet: fs,
		Options: ffOptions(),
		Exec:    cfg.Exec,
	})
}
