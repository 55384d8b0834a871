package ds1307

import (
	"fmt"
	"time"
)

// DateTime holds the calendar and clock fields of the device.
type DateTime struct {
	Year    int // 2000-2099
	Month   int // 1-12
	Day     int // 1-31
	Weekday int // 1-7
	Hour    int // 0-23
	Minute  int // 0-59
	Second  int // 0-59
}

// Validate checks that every field fits its register.
//
// The first field out of range is reported wrapped in ErrInvalidInputData.
func (dt DateTime) Validate() error {
	checks := []struct {
		name   string
		v      int
		lo, hi int
	}{
		{"year", dt.Year, century, century + 99},
		{"month", dt.Month, 1, 12},
		{"day", dt.Day, 1, 31},
		{"weekday", dt.Weekday, 1, 7},
		{"hours", dt.Hour, 0, 23},
		{"minutes", dt.Minute, 0, 59},
		{"seconds", dt.Second, 0, 59},
	}
	for _, c := range checks {
		if err := checkRange(c.name, c.v, c.lo, c.hi); err != nil {
			return err
		}
	}
	return nil
}

// Time returns dt as a UTC time. The weekday is ignored.
//
// The device does not check the day against the month, so dt may hold a
// date such as February 31. time.Date normalizes it (to March 2 or 3); use
// String to show the registers as stored.
func (dt DateTime) Time() time.Time {
	return time.Date(
		dt.Year, time.Month(dt.Month), dt.Day,
		dt.Hour, dt.Minute, dt.Second, 0, time.UTC,
	)
}

// String formats the fields as stored, "2006-01-02 15:04:05".
func (dt DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

// FromTime returns the fields of t in UTC, truncated to the second.
//
// Weekday 1 is Sunday.
func FromTime(t time.Time) DateTime {
	t = t.UTC()
	return DateTime{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Weekday: int(t.Weekday()) + 1,
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}
}

// DateTime reads all time registers in a single burst.
//
// A single transaction guarantees the fields are coherent; the device
// latches its counters at the start of the transfer.
func (d *Dev) DateTime() (DateTime, error) {
	var buf [timeRegisters]byte
	if err := d.readRegisters(regSeconds, buf[:]); err != nil {
		return DateTime{}, err
	}
	return DateTime{
		Year:    century + bcdToDecimal(buf[regYear]),
		Month:   bcdToDecimal(buf[regMonth] & maskMonth),
		Day:     bcdToDecimal(buf[regDay] & maskDay),
		Weekday: bcdToDecimal(buf[regWeekday] & maskWeekday),
		Hour:    decodeHours(buf[regHours]),
		Minute:  bcdToDecimal(buf[regMinutes] & maskMinutes),
		Second:  bcdToDecimal(buf[regSeconds] & maskSeconds),
	}, nil
}

// SetDateTime writes all time registers in a single burst.
//
// Every field is validated before anything is sent. The clock halt bit is
// read first and written back unchanged, and the hours are written in
// 24-hour mode.
func (d *Dev) SetDateTime(dt DateTime) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	seconds, err := d.readRegister(regSeconds)
	if err != nil {
		return err
	}
	buf := [timeRegisters]byte{
		regSeconds: seconds&flagClockHalt | decimalToBCD(dt.Second),
		regMinutes: decimalToBCD(dt.Minute),
		regHours:   decimalToBCD(dt.Hour),
		regWeekday: decimalToBCD(dt.Weekday),
		regDay:     decimalToBCD(dt.Day),
		regMonth:   decimalToBCD(dt.Month),
		regYear:    decimalToBCD(dt.Year - century),
	}
	return d.writeRegisters(regSeconds, buf[:])
}

// Now returns the current time of the device, accurate to the second.
//
// The device is assumed to hold UTC.
func (d *Dev) Now() (time.Time, error) {
	dt, err := d.DateTime()
	if err != nil {
		return time.Time{}, err
	}
	return dt.Time(), nil
}

// SetTime sets the device to t converted to UTC.
//
// Sub-second precision is dropped. Years outside of 2000-2099 are rejected.
func (d *Dev) SetTime(t time.Time) error {
	return d.SetDateTime(FromTime(t))
}
