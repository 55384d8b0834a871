package ds1307

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

// fakeChip is a register file behaving like the DS1307 address pointer:
// the first written byte sets the pointer, which then auto-increments and
// wraps after 0x3f.
type fakeChip struct {
	regs [64]byte
	ptr  byte
	txs  int
	err  error
}

var _ i2c.Bus = (*fakeChip)(nil)

func (f *fakeChip) String() string { return "fake" }

func (f *fakeChip) SetSpeed(physic.Frequency) error { return nil }

func (f *fakeChip) Tx(addr uint16, w, r []byte) error {
	f.txs++
	if f.err != nil {
		return f.err
	}
	if addr != DefaultAddress {
		return errors.New("fake: nack")
	}
	if len(w) > 0 {
		f.ptr = w[0]
		for _, b := range w[1:] {
			f.regs[f.ptr%64] = b
			f.ptr++
		}
	}
	for i := range r {
		r[i] = f.regs[f.ptr%64]
		f.ptr++
	}
	return nil
}

func newFake(t *testing.T) (*Dev, *fakeChip) {
	t.Helper()
	chip := &fakeChip{}
	d, err := NewI2C(chip)
	if err != nil {
		t.Fatal(err)
	}
	return d, chip
}

// newPlayback returns a device that expects exactly ops.
func newPlayback(t *testing.T, ops ...i2ctest.IO) *Dev {
	t.Helper()
	pb := &i2ctest.Playback{Ops: ops, DontPanic: true}
	d, err := NewI2C(pb)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := pb.Close(); err != nil {
			t.Error(err)
		}
	})
	return d
}

func read(reg byte, data ...byte) i2ctest.IO {
	return i2ctest.IO{Addr: DefaultAddress, W: []byte{reg}, R: data}
}

func write(reg byte, data ...byte) i2ctest.IO {
	return i2ctest.IO{Addr: DefaultAddress, W: append([]byte{reg}, data...)}
}
