package ds1307

// Seconds reads the seconds (0-59).
//
// The clock halt bit is masked off.
func (d *Dev) Seconds() (int, error) {
	return d.readRegisterDecimal(regSeconds, maskSeconds)
}

// SetSeconds sets the seconds (0-59).
//
// The clock halt bit shares the register, so the register is read first and
// the running state of the oscillator is kept as is.
func (d *Dev) SetSeconds(seconds int) error {
	if err := checkRange("seconds", seconds, 0, 59); err != nil {
		return err
	}
	data, err := d.readRegister(regSeconds)
	if err != nil {
		return err
	}
	return d.writeRegister(regSeconds, data&flagClockHalt|decimalToBCD(seconds))
}

// Minutes reads the minutes (0-59).
func (d *Dev) Minutes() (int, error) {
	return d.readRegisterDecimal(regMinutes, maskMinutes)
}

// SetMinutes sets the minutes (0-59).
func (d *Dev) SetMinutes(minutes int) error {
	if err := checkRange("minutes", minutes, 0, 59); err != nil {
		return err
	}
	return d.writeRegisterDecimal(regMinutes, minutes)
}

// Hours reads the hours (0-23).
//
// A register left in 12-hour mode by someone else is converted to 24-hour
// time.
func (d *Dev) Hours() (int, error) {
	data, err := d.readRegister(regHours)
	if err != nil {
		return 0, err
	}
	return decodeHours(data), nil
}

// SetHours sets the hours (0-23) and switches the device to 24-hour mode.
func (d *Dev) SetHours(hours int) error {
	if err := checkRange("hours", hours, 0, 23); err != nil {
		return err
	}
	return d.writeRegisterDecimal(regHours, hours)
}

// Weekday reads the day of the week (1-7).
//
// The device only counts; what day 1 means is up to the user. SetTime uses
// 1 for Sunday.
func (d *Dev) Weekday() (int, error) {
	return d.readRegisterDecimal(regWeekday, maskWeekday)
}

// SetWeekday sets the day of the week (1-7).
func (d *Dev) SetWeekday(weekday int) error {
	if err := checkRange("weekday", weekday, 1, 7); err != nil {
		return err
	}
	return d.writeRegisterDecimal(regWeekday, weekday)
}

// Day reads the day of the month (1-31).
func (d *Dev) Day() (int, error) {
	return d.readRegisterDecimal(regDay, maskDay)
}

// SetDay sets the day of the month (1-31).
//
// The day is not checked against the month.
func (d *Dev) SetDay(day int) error {
	if err := checkRange("day", day, 1, 31); err != nil {
		return err
	}
	return d.writeRegisterDecimal(regDay, day)
}

// Month reads the month (1-12).
func (d *Dev) Month() (int, error) {
	return d.readRegisterDecimal(regMonth, maskMonth)
}

// SetMonth sets the month (1-12).
func (d *Dev) SetMonth(month int) error {
	if err := checkRange("month", month, 1, 12); err != nil {
		return err
	}
	return d.writeRegisterDecimal(regMonth, month)
}

// Year reads the year (2000-2099).
func (d *Dev) Year() (int, error) {
	year, err := d.readRegisterDecimal(regYear, 0xff)
	if err != nil {
		return 0, err
	}
	return century + year, nil
}

// SetYear sets the year (2000-2099).
//
// Only the last two digits are stored on the device.
func (d *Dev) SetYear(year int) error {
	if err := checkRange("year", year, century, century+99); err != nil {
		return err
	}
	return d.writeRegisterDecimal(regYear, year-century)
}
