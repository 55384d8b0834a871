package ds1307

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// Dev is a handle to a DS1307.
//
// Dev owns the bus it was created with until Destroy is called. It is not
// safe for concurrent use.
type Dev struct {
	bus i2c.Bus
	c   i2c.Dev
	cfg Config
	log Logger
}

// New returns a new DS1307 device using the bus in the supplied config.
//
// No I/O is done. The first access to the device happens on the first call
// to any of the getters or setters.
func New(cfg Config) (*Dev, error) {
	if cfg.I2C.Bus == nil {
		return nil, errNilBus
	}
	if cfg.I2C.Address > 0x7f {
		return nil, errAddress
	}
	d := &Dev{
		bus: cfg.I2C.Bus,
		cfg: cfg,
		log: getLogger(cfg),
	}
	d.c = i2c.Dev{
		Bus:  &busDebug{"rtc", d.log, cfg.I2C.Bus},
		Addr: cfg.I2C.Address,
	}
	return d, nil
}

// NewI2C returns a DS1307 at DefaultAddress on bus.
func NewI2C(bus i2c.Bus) (*Dev, error) {
	return New(ConfigI2CDefault(bus))
}

// Destroy hands back the bus the device was created with.
//
// The device is not touched. The Dev must not be used afterwards.
func (d *Dev) Destroy() i2c.Bus {
	bus := d.bus
	d.bus = nil
	d.c.Bus = nil
	return bus
}

func (d *Dev) String() string {
	if d.bus == nil {
		return "ds1307(destroyed)"
	}
	return fmt.Sprintf("ds1307(%s@0x%02x)", d.bus, d.c.Addr)
}

func (d *Dev) readRegister(reg uint8) (byte, error) {
	var buf [1]byte
	if err := d.readRegisters(reg, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// readRegisters reads len(p) consecutive registers starting at reg in a
// single transaction.
func (d *Dev) readRegisters(reg uint8, p []byte) error {
	if err := d.c.Tx([]byte{reg}, p); err != nil {
		return &BusError{Op: "read", Reg: reg, Err: err}
	}
	return nil
}

func (d *Dev) writeRegister(reg uint8, data byte) error {
	return d.writeRegisters(reg, []byte{data})
}

// writeRegisters writes p to consecutive registers starting at reg in a
// single transaction.
func (d *Dev) writeRegisters(reg uint8, p []byte) error {
	w := make([]byte, 0, len(p)+1)
	w = append(w, reg)
	w = append(w, p...)
	if err := d.c.Tx(w, nil); err != nil {
		return &BusError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

func (d *Dev) readRegisterDecimal(reg uint8, mask byte) (int, error) {
	data, err := d.readRegister(reg)
	if err != nil {
		return 0, err
	}
	return bcdToDecimal(data & mask), nil
}

func (d *Dev) writeRegisterDecimal(reg uint8, v int) error {
	return d.writeRegister(reg, decimalToBCD(v))
}
