package ds1307

// IsRunning returns true if the oscillator is running.
func (d *Dev) IsRunning() (bool, error) {
	data, err := d.readRegister(regSeconds)
	if err != nil {
		return false, err
	}
	return data&flagClockHalt == 0, nil
}

// Halt stops the oscillator. The seconds are kept.
//
// The device draws less current from its battery while halted.
func (d *Dev) Halt() error {
	return d.updateClockHalt(true)
}

// Start starts the oscillator. The seconds are kept.
func (d *Dev) Start() error {
	return d.updateClockHalt(false)
}

func (d *Dev) updateClockHalt(halt bool) error {
	data, err := d.readRegister(regSeconds)
	if err != nil {
		return err
	}
	if halt {
		data |= flagClockHalt
	} else {
		data &^= flagClockHalt
	}
	return d.writeRegister(regSeconds, data)
}
