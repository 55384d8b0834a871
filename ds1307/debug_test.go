package ds1307

import (
	"fmt"
	"log"
	"strings"
	"testing"
)

func TestHexDump(t *testing.T) {
	want := "h -> \n00000000  66 6f 6f 62 61 72                                 |foobar|\n\n <- h"
	got := fmt.Sprintf("h -> %s <- h", hexDump([]byte("foobar")))
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDebugLogger(t *testing.T) {
	var buf strings.Builder
	cfg := ConfigI2CDefault(&fakeChip{})
	cfg.Debug = log.New(&buf, "", 0)
	d, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetMinutes(30); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"tx 0x68 send(2) recv(0)", "|.0|"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q does not contain %q", out, want)
		}
	}
}

func TestGetLogger(t *testing.T) {
	if _, ok := getLogger(Config{}).(discardLogger); !ok {
		t.Error("want the discarding logger without Config.Debug")
	}
	l := log.New(&strings.Builder{}, "", 0)
	if got := getLogger(Config{Debug: l}); got != Logger(l) {
		t.Errorf("got %v, want the configured logger", got)
	}
}
