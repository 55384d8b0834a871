package tinyi2c

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"
	"github.com/northvolt/go-ds1307/ds1307"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeI2C)(nil)

type tx struct {
	addr uint16
	w    []byte
	r    int
}

// fakeI2C answers every read with the next byte of data.
type fakeI2C struct {
	txs  []tx
	data []byte
	err  error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.txs = append(f.txs, tx{addr, append([]byte(nil), w...), len(r)})
	if f.err != nil {
		return f.err
	}
	n := copy(r, f.data)
	f.data = f.data[n:]
	return nil
}

func TestTx(t *testing.T) {
	c := qt.New(t)
	f := &fakeI2C{data: []byte{0x59}}
	b := New(f, "I2C0")

	r := make([]byte, 1)
	c.Assert(b.Tx(0x68, []byte{0x00}, r), qt.IsNil)
	c.Assert(r[0], qt.Equals, byte(0x59))
	c.Assert(f.txs, qt.CmpEquals(cmp.AllowUnexported(tx{})), []tx{{0x68, []byte{0x00}, 1}})
	c.Assert(b.String(), qt.Equals, "I2C0")
	c.Assert(b.Unwrap(), qt.Equals, drivers.I2C(f))
}

func TestTenBitAddress(t *testing.T) {
	c := qt.New(t)
	f := &fakeI2C{}
	b := New(f, "I2C0")

	c.Assert(b.Tx(0x200, nil, nil), qt.Not(qt.IsNil))
	c.Assert(f.txs, qt.HasLen, 0)
}

func TestSetSpeed(t *testing.T) {
	b := New(&fakeI2C{}, "I2C0")
	qt.Assert(t, b.SetSpeed(400*physic.KiloHertz), qt.ErrorIs, ErrSpeedUnsupported)
}

func TestDriver(t *testing.T) {
	c := qt.New(t)
	f := &fakeI2C{data: []byte{0x80 | 0x30}}
	d, err := ds1307.NewI2C(New(f, "I2C0"))
	c.Assert(err, qt.IsNil)

	running, err := d.IsRunning()
	c.Assert(err, qt.IsNil)
	c.Assert(running, qt.IsFalse)

	cause := errors.New("nack")
	f.err = cause
	_, err = d.Seconds()
	c.Assert(err, qt.ErrorIs, cause)
	var be *ds1307.BusError
	c.Assert(errors.As(err, &be), qt.IsTrue)
}
