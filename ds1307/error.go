package ds1307

import (
	"errors"
	"fmt"
)

// ErrInvalidInputData is returned when a value is outside of the range the
// register can hold.
//
// It is always detected before any bus access, so the device is left
// untouched. Use errors.Is to test for it; the returned error names the
// offending field.
var ErrInvalidInputData = errors.New("ds1307: invalid input data")

// Package errors.
var (
	errNilBus  = errors.New("ds1307: nil i2c bus")
	errAddress = errors.New("ds1307: invalid 7-bit i2c address")
)

// BusError is returned when the underlying I²C transport failed.
//
// Nothing is retried. The register contents are unknown after a failed
// write.
type BusError struct {
	// Op is either "read" or "write".
	Op string
	// Reg is the first register of the transaction.
	Reg uint8
	// Err is the error returned by the bus.
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("ds1307: bus error on %s at register 0x%02x: %v", e.Op, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// invalidInput wraps ErrInvalidInputData with the name and range of the
// rejected field.
func invalidInput(field string, v, lo, hi int) error {
	return fmt.Errorf("%w: %s %d not in range %d-%d", ErrInvalidInputData, field, v, lo, hi)
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return invalidInput(field, v, lo, hi)
	}
	return nil
}
