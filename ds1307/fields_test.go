package ds1307

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestReadFields(t *testing.T) {
	testCases := []struct {
		name string
		fn   func(d *Dev) (int, error)
		op   i2ctest.IO
		want int
	}{
		{"seconds", (*Dev).Seconds, read(regSeconds, 0b0101_1001), 59},
		{"seconds clock halted", (*Dev).Seconds, read(regSeconds, 0b1101_1001), 59},
		{"minutes", (*Dev).Minutes, read(regMinutes, 0b0101_1001), 59},
		{"hours 24h", (*Dev).Hours, read(regHours, 0b0010_0011), 23},
		{"hours 12h pm", (*Dev).Hours, read(regHours, 0b0111_0001), 23},
		{"weekday", (*Dev).Weekday, read(regWeekday, 0x07), 7},
		{"day", (*Dev).Day, read(regDay, 0x31), 31},
		{"month", (*Dev).Month, read(regMonth, 0x12), 12},
		{"year", (*Dev).Year, read(regYear, 0x99), 2099},
		{"year 2000", (*Dev).Year, read(regYear, 0x00), 2000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newPlayback(t, tc.op)
			got, err := tc.fn(d)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestWriteFields(t *testing.T) {
	testCases := []struct {
		name string
		fn   func(d *Dev) error
		ops  []i2ctest.IO
	}{
		{
			"seconds",
			func(d *Dev) error { return d.SetSeconds(59) },
			[]i2ctest.IO{read(regSeconds, 0x00), write(regSeconds, 0b0101_1001)},
		},
		{
			"seconds keeps clock halt",
			func(d *Dev) error { return d.SetSeconds(45) },
			[]i2ctest.IO{read(regSeconds, 0x80|0x12), write(regSeconds, 0x80|0x45)},
		},
		{
			"minutes",
			func(d *Dev) error { return d.SetMinutes(59) },
			[]i2ctest.IO{write(regMinutes, 0b0101_1001)},
		},
		{
			"hours",
			func(d *Dev) error { return d.SetHours(23) },
			[]i2ctest.IO{write(regHours, 0b0010_0011)},
		},
		{
			"hours midnight",
			func(d *Dev) error { return d.SetHours(0) },
			[]i2ctest.IO{write(regHours, 0x00)},
		},
		{
			"weekday",
			func(d *Dev) error { return d.SetWeekday(7) },
			[]i2ctest.IO{write(regWeekday, 0x07)},
		},
		{
			"day",
			func(d *Dev) error { return d.SetDay(31) },
			[]i2ctest.IO{write(regDay, 0x31)},
		},
		{
			"month",
			func(d *Dev) error { return d.SetMonth(12) },
			[]i2ctest.IO{write(regMonth, 0x12)},
		},
		{
			"year",
			func(d *Dev) error { return d.SetYear(2099) },
			[]i2ctest.IO{write(regYear, 0x99)},
		},
		{
			"year 2000",
			func(d *Dev) error { return d.SetYear(2000) },
			[]i2ctest.IO{write(regYear, 0x00)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newPlayback(t, tc.ops...)
			if err := tc.fn(d); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestSetHoursForces24h(t *testing.T) {
	d, chip := newFake(t)
	// 11 PM in 12-hour mode.
	chip.regs[regHours] = 0b0111_0001
	if h, err := d.Hours(); err != nil || h != 23 {
		t.Fatalf("got %d %v, want 23", h, err)
	}
	if err := d.SetHours(23); err != nil {
		t.Fatal(err)
	}
	if got := chip.regs[regHours]; got&flagHour12 != 0 || got != 0x23 {
		t.Errorf("got %#08b, want 24-hour 0x23", got)
	}
}

func TestSetFieldOutOfRange(t *testing.T) {
	testCases := []struct {
		name string
		fn   func(d *Dev) error
	}{
		{"seconds 60", func(d *Dev) error { return d.SetSeconds(60) }},
		{"seconds -1", func(d *Dev) error { return d.SetSeconds(-1) }},
		{"minutes 60", func(d *Dev) error { return d.SetMinutes(60) }},
		{"hours 24", func(d *Dev) error { return d.SetHours(24) }},
		{"weekday 0", func(d *Dev) error { return d.SetWeekday(0) }},
		{"weekday 8", func(d *Dev) error { return d.SetWeekday(8) }},
		{"day 0", func(d *Dev) error { return d.SetDay(0) }},
		{"day 32", func(d *Dev) error { return d.SetDay(32) }},
		{"month 0", func(d *Dev) error { return d.SetMonth(0) }},
		{"month 13", func(d *Dev) error { return d.SetMonth(13) }},
		{"year 1999", func(d *Dev) error { return d.SetYear(1999) }},
		{"year 2100", func(d *Dev) error { return d.SetYear(2100) }},
		{"year 99", func(d *Dev) error { return d.SetYear(99) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, chip := newFake(t)
			if err := tc.fn(d); !errors.Is(err, ErrInvalidInputData) {
				t.Errorf("got %v, want %v", err, ErrInvalidInputData)
			}
			if chip.txs != 0 {
				t.Errorf("got %d transactions, want 0", chip.txs)
			}
		})
	}
}

func TestSecondsMinutesRange(t *testing.T) {
	for v := 0; v <= 59; v++ {
		d, chip := newFake(t)
		if err := d.SetSeconds(v); err != nil {
			t.Fatal(err)
		}
		if err := d.SetMinutes(v); err != nil {
			t.Fatal(err)
		}
		s, err := d.Seconds()
		if err != nil {
			t.Fatal(err)
		}
		m, err := d.Minutes()
		if err != nil {
			t.Fatal(err)
		}
		if s != v || m != v {
			t.Errorf("got %d:%d, want %d:%d", m, s, v, v)
		}
		if chip.regs[regSeconds] != decimalToBCD(v) {
			t.Errorf("seconds register %#02x, want %#02x", chip.regs[regSeconds], decimalToBCD(v))
		}
	}
}
