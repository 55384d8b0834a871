package main

import (
	"context"
	"flag"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

const envVarPrefix = "DS1307"

type rootConfig struct {
	verbose  bool
	iface    string
	bus      int
	addr     string
	hidIndex int
}

func (c *rootConfig) registerFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "v", false, "increase log verbosity")
	fs.StringVar(&c.iface, "i", "i2c", "interface type, hid or i2c")
	fs.IntVar(&c.bus, "bus", 0, "i2c bus to use")
	fs.StringVar(&c.addr, "addr", "", "i2c address in hex")
	fs.IntVar(&c.hidIndex, "hid-index", 0, "usb bridge index when enumerating")
}

func (c *rootConfig) Exec(context.Context, []string) error {
	return flag.ErrHelp
}

func newRootCmd() (*ffcli.Command, *rootConfig) {
	var cfg rootConfig

	fs := flag.NewFlagSet("ds1307", flag.ExitOnError)
	cfg.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "ds1307",
		ShortUsage: "ds1307 [flags] <subcommand>",
		ShortHelp:  "Utilities to read, set and configure your DS1307 real-time clock.",
		FlagSet:    fs,
		Options:    ffOptions(),
		Exec:       cfg.Exec,
	}), &cfg
}

func ffOptions() []ff.Option {
	return []ff.Option{ff.WithEnvVarPrefix(envVarPrefix)}
}

var ds1307LongHelp = `

GENERAL
The device is reached on a native I²C bus (-i i2c, the default) or through an
MCP2221A USB to I²C bridge (-i hid). Every flag can also be set from the
environment, prefixed with DS1307_:

  DS1307_BUS=1 DS1307_ADDR=0x68 ds1307 get

The clock always runs in 24-hour mode and covers the years 2000 to 2099.`
