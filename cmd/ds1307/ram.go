package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/northvolt/go-ds1307/ds1307"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type ramConfig struct {
	rootConfig *rootConfig
	in         io.Reader
	out        io.Writer
	err        io.Writer
	offset     int
	length     int
}

func (c *ramConfig) Read(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintf(c.err, "ram read\n")
	}

	d, closer, err := newDS1307(c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	return readRAM(d, c.offset, c.length, c.out)
}

func (c *ramConfig) Write(ctx context.Context, args []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintf(c.err, "ram write\n")
	}

	var src string
	switch {
	case len(args) == 0 || args[0] == "-":
		b, err := io.ReadAll(c.in)
		if err != nil {
			return err
		}
		src = string(b)
	default:
		src = strings.Join(args, "")
	}
	data, err := parseHex(src)
	if err != nil {
		return fmt.Errorf("ds1307: invalid hex data: %w", err)
	}

	d, closer, err := newDS1307(c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := d.WriteRAM(c.offset, data); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Wrote %d bytes at offset %d\n", len(data), c.offset)
	return nil
}

// readRAM prints length bytes from offset, or the rest of the RAM when
// length is zero.
func readRAM(d *ds1307.Dev, offset, length int, w io.Writer) error {
	if length == 0 {
		length = ds1307.RAMSize - offset
	}
	if length < 0 {
		return fmt.Errorf("%w: length %d", ds1307.ErrInvalidInputData, length)
	}
	buf := make([]byte, length)
	if err := d.ReadRAM(offset, buf); err != nil {
		return err
	}
	fmt.Fprintln(w, "RAM:")
	fmt.Fprintln(w, prettyHexIndent(buf, "    ", " "))
	return nil
}

func newRAMCmd(
	rootConfig *rootConfig, in io.Reader, out io.Writer, err io.Writer,
) *ffcli.Command {
	cfg := ramConfig{
		rootConfig: rootConfig,
		in:         in,
		out:        out,
		err:        err,
	}

	readFs := flag.NewFlagSet("ds1307 ram read", flag.ExitOnError)
	readFs.IntVar(&cfg.offset, "offset", 0, "first byte to read, 0-55")
	readFs.IntVar(&cfg.length, "length", 0, "bytes to read, 0 reads to the end")
	rootConfig.registerFlags(readFs)

	writeFs := flag.NewFlagSet("ds1307 ram write", flag.ExitOnError)
	writeFs.IntVar(&cfg.offset, "offset", 0, "first byte to write, 0-55")
	rootConfig.registerFlags(writeFs)

	fs := flag.NewFlagSet("ds1307 ram", flag.ExitOnError)
	rootConfig.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "ram",
		ShortUsage: "ram read|write",
		ShortHelp:  "Reads or writes the 56 bytes of battery backed RAM.",
		FlagSet:    fs,
		Options:    ffOptions(),
		Exec:       rootConfig.Exec,
		Subcommands: []*ffcli.Command{
			{
				Name:       "read",
				ShortUsage: "ram read [-offset <n>] [-length <n>]",
				ShortHelp:  "Prints RAM contents in hex.",
				FlagSet:    readFs,
				Options:    ffOptions(),
				Exec:       cfg.Read,
			},
			{
				Name:       "write",
				ShortUsage: "ram write [-offset <n>] <hex bytes>|-",
				ShortHelp:  "Writes hex bytes, read from stdin when given -.",
				FlagSet:    writeFs,
				Options:    ffOptions(),
				Exec:       cfg.Write,
			},
		},
	})
}
