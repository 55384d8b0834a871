package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"
)

type setConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	time       string
	start      bool
}

func (c *setConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintf(c.err, "set\n")
	}

	t, err := parseTime(c.time, time.Now)
	if err != nil {
		return err
	}

	d, closer, err := newDS1307(c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := d.SetTime(t); err != nil {
		return err
	}
	if c.start {
		if err := d.Start(); err != nil {
			return err
		}
	}

	fmt.Fprintln(c.out, "Clock set to", t.UTC().Format(time.RFC3339))
	return nil
}

// parseTime parses an RFC 3339 time, or "now".
func parseTime(s string, now func() time.Time) (time.Time, error) {
	if s == "" || s == "now" {
		return now().Truncate(time.Second), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("ds1307: invalid time %q, expected RFC 3339", s)
	}
	return t, nil
}

func newSetCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := setConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("ds1307 set", flag.ExitOnError)
	fs.StringVar(&cfg.time, "time", "now", "time to set in RFC 3339, eg 2024-03-01T12:00:00Z")
	fs.BoolVar(&cfg.start, "start", true, "start the oscillator after setting the time")
	rootConfig.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "set",
		ShortUsage: "set [-time <rfc3339>]",
		ShortHelp:  "Sets the date and time of the clock, stored in UTC.",
		FlagSet:    fs,
		Options:    ffOptions(),
		Exec:       cfg.Exec,
	})
}
