package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/northvolt/go-ds1307/ds1307"
	"github.com/northvolt/go-ds1307/pkg/mcp2221"
	"github.com/peterbourgon/ff/v3/ffcli"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

const defaultI2CAddress = ds1307.DefaultAddress

func newDS1307(c *rootConfig) (*ds1307.Dev, io.Closer, error) {
	switch c.iface {
	case "i2c":
		return newDS1307_I2C(c)
	case "hid":
		return newDS1307_HID(c)
	default:
		return nil, nil, errors.New("ds1307: unknown interface")
	}
}

func newDS1307_I2C(c *rootConfig) (*ds1307.Dev, io.Closer, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	bus, err := i2creg.Open(strconv.Itoa(c.bus))
	if err != nil {
		return nil, nil, fmt.Errorf("ds1307: failed to connect to bus: %w", err)
	}
	return openDev(c, bus)
}

func newDS1307_HID(c *rootConfig) (*ds1307.Dev, io.Closer, error) {
	cfg := mcp2221.DefaultConfig()
	cfg.Index = c.hidIndex
	bus, err := mcp2221.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return openDev(c, bus)
}

func openDev(c *rootConfig, bus i2c.BusCloser) (*ds1307.Dev, io.Closer, error) {
	addr, err := getI2CAddress(c.addr)
	if err != nil {
		bus.Close()
		return nil, nil, err
	}

	cfg := ds1307.ConfigI2CDefault(bus)
	cfg.Debug = newLogger(c.verbose)
	cfg.I2C.Address = addr
	d, err := ds1307.New(cfg)
	if err != nil {
		bus.Close()
		return nil, nil, err
	}
	return d, bus, nil
}

func getI2CAddress(addrStr string) (uint16, error) {
	if addrStr == "" {
		return defaultI2CAddress, nil
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(addrStr, "0x"), 16, 16)
	if err != nil {
		return 0, err
	}
	if addr > 0x7f {
		return 0, fmt.Errorf("ds1307: address %#x is not a 7-bit address", addr)
	}
	return uint16(addr), nil
}

func prettyHex(data []byte) string {
	return prettyHexIndent(data, "    ", "")
}

func prettyHexIndent(data []byte, prefix string, space string) string {
	var buf strings.Builder

	// prefix and space every 16 byte, and 2 hex, and one space/newline
	cols := 16
	size := (len(data)/cols+1)*(len(prefix)+len(space)+1) + len(data)*3
	buf.Grow(size)

	for i := range data {
		if i > 0 {
			switch i % cols {
			case 0:
				buf.WriteByte('\n')
			case cols / 2:
				buf.WriteByte(' ')
				buf.WriteString(space)
			default:
				buf.WriteByte(' ')
			}
		}
		if i%cols == 0 {
			buf.WriteString(prefix)
		}

		fmt.Fprintf(&buf, "%02X", data[i])
	}

	return buf.String()
}

// parseHex parses bytes written as hex, optionally separated by spaces or
// colons.
func parseHex(s string) ([]byte, error) {
	r := strings.NewReplacer(" ", "", ":", "", "\n", "", "\t", "")
	return hex.DecodeString(strings.TrimPrefix(r.Replace(s), "0x"))
}

func writeJSON(w io.Writer, data any) error {
	j, err := json.MarshalIndent(data, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", j)
	return err
}

func addLongHelp(cmd *ffcli.Command) *ffcli.Command {
	if cmd.LongHelp == "" {
		cmd.LongHelp = cmd.ShortHelp
	}

	cmd.LongHelp += ds1307LongHelp

	return cmd
}

func newLogger(verbose bool) ds1307.Logger {
	if verbose {
		return log.New(os.Stderr, "", 0)
	} else {
		return nil
	}
}
