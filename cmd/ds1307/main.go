/*
ds1307 reads, sets and configures a DS1307 real-time clock.

The clock is reached over a native I²C bus or an MCP2221A USB bridge. Run
"ds1307 -h" for the subcommands.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/peterbourgon/ff/v3/ffcli"
)

// forceExitAfter is the number of interrupts that abort a stuck bus
// transaction.
const forceExitAfter = 3

func main() {
	rootCmd, cfg := newRootCmd()
	rootCmd.Subcommands = []*ffcli.Command{
		newGetCmd(cfg, os.Stdout, os.Stderr),
		newSetCmd(cfg, os.Stdout, os.Stderr),
		newClockCmd(cfg, os.Stdout, os.Stderr),
		newSqwCmd(cfg, os.Stdout, os.Stderr),
		newRAMCmd(cfg, os.Stdin, os.Stdout, os.Stderr),
		newNVRAMCmd(cfg, os.Stdin, os.Stdout, os.Stderr),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancelOnInterrupt(cancel)

	err := rootCmd.ParseAndRun(ctx, os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		if cfg.verbose {
			fmt.Fprintf(os.Stderr, "%s: cancelled\n", rootCmd.Name)
		}
	default:
		fmt.Fprintf(os.Stderr, "%s: %s\n", rootCmd.Name, strings.TrimPrefix(err.Error(), "ds1307: "))
		os.Exit(1)
	}
}

// cancelOnInterrupt cancels on the first interrupt and exits once
// forceExitAfter interrupts have arrived.
func cancelOnInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for n := 1; ; n++ {
			<-c
			if n >= forceExitAfter {
				os.Exit(1)
			}
			cancel()
		}
	}()
}
