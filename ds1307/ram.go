package ds1307

import (
	"fmt"
)

// RAMSize is the size of the battery backed RAM.
const RAMSize = 56

func checkRAM(offset, n int) error {
	if offset < 0 || offset >= RAMSize || n > RAMSize-offset {
		return fmt.Errorf("%w: ram offset %d length %d exceeds %d bytes", ErrInvalidInputData, offset, n, RAMSize)
	}
	return nil
}

// ReadRAM reads len(p) bytes from the RAM starting at offset (0-55).
//
// offset+len(p) must not exceed RAMSize. The read is a single burst.
func (d *Dev) ReadRAM(offset int, p []byte) error {
	if err := checkRAM(offset, len(p)); err != nil {
		return err
	}
	// Always succeed reading 0 bytes
	if len(p) == 0 {
		return nil
	}
	return d.readRegisters(uint8(regRAM+offset), p)
}

// WriteRAM writes p to the RAM starting at offset (0-55).
//
// offset+len(p) must not exceed RAMSize. The write is a single burst.
func (d *Dev) WriteRAM(offset int, p []byte) error {
	if err := checkRAM(offset, len(p)); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	return d.writeRegisters(uint8(regRAM+offset), p)
}
