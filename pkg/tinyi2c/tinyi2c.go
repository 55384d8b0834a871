// Package tinyi2c lets drivers written against periph.io buses run on a
// TinyGo I²C bus.
//
//	bus := tinyi2c.New(machine.I2C0, "I2C0")
//	rtc, err := ds1307.NewI2C(bus)
package tinyi2c

import (
	"errors"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// ErrSpeedUnsupported is returned by SetSpeed. TinyGo fixes the bus
// frequency when the machine bus is configured.
var ErrSpeedUnsupported = errors.New("tinyi2c: bus speed is set by machine.I2CConfig")

// Bus wraps a TinyGo bus.
type Bus struct {
	bus  drivers.I2C
	name string
}

var _ i2c.Bus = (*Bus)(nil)

// New returns a periph.io bus backed by bus. The name is only used by
// String.
func New(bus drivers.I2C, name string) *Bus {
	return &Bus{bus: bus, name: name}
}

func (b *Bus) String() string {
	return b.name
}

// Tx writes w and then reads into r, using a repeated start when both are
// set.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7f {
		return errors.New("tinyi2c: 10-bit addresses are not supported")
	}
	return b.bus.Tx(addr, w, r)
}

func (b *Bus) SetSpeed(f physic.Frequency) error {
	return ErrSpeedUnsupported
}

// Unwrap returns the TinyGo bus.
func (b *Bus) Unwrap() drivers.I2C {
	return b.bus
}
