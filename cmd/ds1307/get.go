package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/template"

	"github.com/northvolt/go-ds1307/ds1307"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type getConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	json       bool
}

func (c *getConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintf(c.err, "get\n")
	}

	d, closer, err := newDS1307(c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	ci, err := getClockInfo(d)
	if err != nil {
		return err
	}

	if c.json {
		return writeJSON(c.out, ci)
	} else {
		return writeText(c.out, ci)
	}
}

const clockInfoTemplate = `Time:
    {{ .DateTime }} (weekday {{ .DateTime.Weekday }})

Oscillator:
    {{ running .Running }}

Square Wave:
    {{ if .SquareWave.Enabled -}}
    enabled at {{ .SquareWave.Rate }}
    {{- else -}}
    disabled, output {{ .SquareWave.Level }}
    {{- end }}
`

func writeText(w io.Writer, ci *clockInfo) error {
	funcs := template.FuncMap{
		"running": func(b bool) string {
			if b {
				return "running"
			} else {
				return "halted"
			}
		},
	}
	t, err := template.New("get").Funcs(funcs).Parse(clockInfoTemplate)
	if err != nil {
		return err
	}

	return t.Execute(w, ci)
}

func newGetCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := getConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("ds1307 get", flag.ExitOnError)
	fs.BoolVar(&cfg.json, "json", false, "output in json mode")
	rootConfig.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "get",
		ShortUsage: "get [-json]",
		ShortHelp:  "Reads the date, time and output configuration of the clock.",
		FlagSet:    fs,
		Options:    ffOptions(),
		Exec:       cfg.Exec,
	})
}

// clockInfo reports the registers as stored; an invalid date such as
// February 31 is shown as is.
type clockInfo struct {
	DateTime   ds1307.DateTime         `json:"-"`
	Time       string                  `json:"time"`
	Weekday    int                     `json:"weekday"`
	Running    bool                    `json:"running"`
	SquareWave ds1307.SquareWaveConfig `json:"square_wave"`
}

func getClockInfo(d *ds1307.Dev) (*clockInfo, error) {
	var ci = &clockInfo{}

	dt, err := d.DateTime()
	if err != nil {
		return nil, err
	}
	ci.DateTime = dt
	ci.Time = fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ",
		dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
	ci.Weekday = dt.Weekday

	ci.Running, err = d.IsRunning()
	if err != nil {
		return nil, err
	}

	ci.SquareWave, err = d.SquareWave()
	if err != nil {
		return nil, err
	}

	return ci, nil
}
