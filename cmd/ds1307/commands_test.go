package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/northvolt/go-ds1307/ds1307"
	"periph.io/x/conn/v3/physic"
)

// fakeRTC is a DS1307 register file with an auto-incrementing pointer.
type fakeRTC struct {
	regs [64]byte
	ptr  byte
}

func (f *fakeRTC) String() string                  { return "fake" }
func (f *fakeRTC) SetSpeed(physic.Frequency) error { return nil }

func (f *fakeRTC) Tx(addr uint16, w, r []byte) error {
	if addr != ds1307.DefaultAddress {
		return errors.New("fake: nack")
	}
	if len(w) > 0 {
		f.ptr = w[0] % 64
		for _, b := range w[1:] {
			f.regs[f.ptr] = b
			f.ptr = (f.ptr + 1) % 64
		}
	}
	for i := range r {
		r[i] = f.regs[f.ptr]
		f.ptr = (f.ptr + 1) % 64
	}
	return nil
}

func newFakeDev(t *testing.T) (*ds1307.Dev, *fakeRTC) {
	t.Helper()
	f := &fakeRTC{}
	d, err := ds1307.NewI2C(f)
	if err != nil {
		t.Fatal(err)
	}
	return d, f
}

func TestRunClock(t *testing.T) {
	d, f := newFakeDev(t)
	f.regs[0x00] = 0x30

	testCases := []struct {
		action string
		reg    byte
		out    string
	}{
		{"halt", 0xb0, "Oscillator is halted\n"},
		{"status", 0xb0, "Oscillator is halted\n"},
		{"start", 0x30, "Oscillator is running\n"},
		{"status", 0x30, "Oscillator is running\n"},
	}

	for _, tc := range testCases {
		var out bytes.Buffer
		if err := runClock(d, tc.action, &out); err != nil {
			t.Fatalf("%s: %v", tc.action, err)
		}
		if f.regs[0x00] != tc.reg {
			t.Errorf("%s: seconds %#02x, want %#02x", tc.action, f.regs[0x00], tc.reg)
		}
		if out.String() != tc.out {
			t.Errorf("%s: got %q, want %q", tc.action, out.String(), tc.out)
		}
	}

	if err := runClock(d, "pause", &bytes.Buffer{}); err == nil {
		t.Error("want error for unknown action")
	}
}

func TestRunSqw(t *testing.T) {
	d, f := newFakeDev(t)

	var out bytes.Buffer
	rate := ds1307.Rate4096Hz
	if err := runSqw(d, &rate, false, nil, &out); err != nil {
		t.Fatal(err)
	}
	if f.regs[0x07] != 0x11 {
		t.Errorf("control %#02x", f.regs[0x07])
	}
	if want := "Square wave enabled at 4.096kHz\n"; out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}

	out.Reset()
	level := ds1307.High
	if err := runSqw(d, nil, true, &level, &out); err != nil {
		t.Fatal(err)
	}
	if f.regs[0x07] != 0x81 {
		t.Errorf("control %#02x", f.regs[0x07])
	}
	if want := "Square wave disabled, output high\n"; out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestReadRAM(t *testing.T) {
	d, f := newFakeDev(t)
	copy(f.regs[0x08:], []byte{0x01, 0x02, 0x03, 0x04})

	var out bytes.Buffer
	if err := readRAM(d, 0, 4, &out); err != nil {
		t.Fatal(err)
	}
	if want := "RAM:\n    01 02 03 04\n"; out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}

	out.Reset()
	if err := readRAM(d, 0, 0, &out); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out.String(), "\n"); n != 5 {
		t.Errorf("want 4 rows of hex, got %q", out.String())
	}

	if err := readRAM(d, 60, 0, &out); !errors.Is(err, ds1307.ErrInvalidInputData) {
		t.Errorf("want invalid input, got %v", err)
	}
}

func TestGetClockInfo(t *testing.T) {
	d, f := newFakeDev(t)
	copy(f.regs[:], []byte{0x42, 0x37, 0x13, 0x05, 0x15, 0x02, 0x24, 0x13})

	ci, err := getClockInfo(d)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := writeText(&out, ci); err != nil {
		t.Fatal(err)
	}
	want := `Time:
    2024-02-15 13:37:42 (weekday 5)

Oscillator:
    running

Square Wave:
    enabled at 32.768kHz
`
	if out.String() != want {
		t.Errorf("got\n%s\nwant\n%s", out.String(), want)
	}

	out.Reset()
	if err := writeJSON(&out, ci); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{`"time": "2024-02-15T13:37:42Z"`, `"running": true`, `"rate": "32.768kHz"`} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("missing %s in %s", s, out.String())
		}
	}
}

func TestRunNVRAM(t *testing.T) {
	d, _ := newFakeDev(t)

	steps := []struct {
		action  string
		payload []byte
		out     string
	}{
		{"load", nil, "No record stored\n"},
		{"store", []byte("hello"), "Stored 5 of 52 bytes\n"},
		{"load", nil, "hello\n"},
		{"clear", nil, "Record cleared\n"},
		{"load", nil, "No record stored\n"},
	}

	for _, s := range steps {
		var out bytes.Buffer
		if err := runNVRAM(d, s.action, s.payload, false, &out); err != nil {
			t.Fatalf("%s: %v", s.action, err)
		}
		if out.String() != s.out {
			t.Errorf("%s: got %q, want %q", s.action, out.String(), s.out)
		}
	}

	if err := runNVRAM(d, "store", make([]byte, 60), false, &bytes.Buffer{}); err == nil {
		t.Error("want error for large payload")
	}
}

func TestGetClockInfoInvalidDate(t *testing.T) {
	d, f := newFakeDev(t)
	copy(f.regs[:], []byte{0x00, 0x30, 0x08, 0x01, 0x31, 0x02, 0x23, 0x00})

	ci, err := getClockInfo(d)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := writeText(&out, ci); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "2023-02-31 08:30:00 (weekday 1)") {
		t.Errorf("date not shown as stored:\n%s", out.String())
	}

	out.Reset()
	if err := writeJSON(&out, ci); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"time": "2023-02-31T08:30:00Z"`) {
		t.Errorf("date not shown as stored:\n%s", out.String())
	}
}
