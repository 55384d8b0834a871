package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/northvolt/go-ds1307/pkg/nvram"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type nvramConfig struct {
	rootConfig *rootConfig
	in         io.Reader
	out        io.Writer
	err        io.Writer
	hex        bool
}

func (c *nvramConfig) Exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return flag.ErrHelp
	}
	if c.rootConfig.verbose {
		fmt.Fprintf(c.err, "nvram %s\n", args[0])
	}

	var payload []byte
	if args[0] == "store" {
		p, err := c.payload(args[1:])
		if err != nil {
			return err
		}
		payload = p
	}

	d, closer, err := newDS1307(c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	return runNVRAM(d, args[0], payload, c.hex, c.out)
}

func (c *nvramConfig) payload(args []string) ([]byte, error) {
	var src string
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(c.in)
		if err != nil {
			return nil, err
		}
		src = string(b)
	} else {
		src = strings.Join(args, " ")
	}
	if c.hex {
		return parseHex(src)
	}
	return []byte(src), nil
}

func runNVRAM(ram nvram.RAM, action string, payload []byte, asHex bool, w io.Writer) error {
	switch action {
	case "load":
		p, err := nvram.Load(ram)
		if errors.Is(err, nvram.ErrNoRecord) {
			fmt.Fprintln(w, "No record stored")
			return nil
		} else if err != nil {
			return err
		}
		if asHex {
			fmt.Fprintln(w, prettyHex(p))
		} else {
			fmt.Fprintf(w, "%s\n", p)
		}
	case "store":
		if err := nvram.Store(ram, payload); err != nil {
			return err
		}
		fmt.Fprintf(w, "Stored %d of %d bytes\n", len(payload), nvram.MaxPayload)
	case "clear":
		if err := nvram.Clear(ram); err != nil {
			return err
		}
		fmt.Fprintln(w, "Record cleared")
	default:
		return fmt.Errorf("ds1307: unknown nvram action %q", action)
	}
	return nil
}

func newNVRAMCmd(
	rootConfig *rootConfig, in io.Reader, out io.Writer, err io.Writer,
) *ffcli.Command {
	cfg := nvramConfig{
		rootConfig: rootConfig,
		in:         in,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("ds1307 nvram", flag.ExitOnError)
	fs.BoolVar(&cfg.hex, "hex", false, "payload is read and printed as hex")
	rootConfig.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "nvram",
		ShortUsage: "nvram load|store <payload>|clear",
		ShortHelp:  "Stores a checksummed record in the RAM.",
		LongHelp: fmt.Sprintf(`Stores a checksummed record in the RAM.

The record holds up to %d bytes of payload. Store reads the payload from
stdin when it is omitted or given as -.`, nvram.MaxPayload),
		FlagSet: fs,
		Options: ffOptions(),
		Exec:    cfg.Exec,
	})
}
