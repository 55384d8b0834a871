package ds1307

import (
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// busDebug logs every transaction before handing it to the next bus.
type busDebug struct {
	id   string
	l    Logger
	next i2c.Bus
}

func (b *busDebug) String() string {
	return b.next.String()
}

func (b *busDebug) Tx(addr uint16, w, r []byte) error {
	b.l.Printf("%5s >>  tx 0x%02x send(%d) recv(%d)", b.id, addr, len(w), len(r))
	if len(w) > 0 {
		b.l.Printf("%s", hexDump(w))
	}
	err := b.next.Tx(addr, w, r)
	b.l.Printf("%5s <<  tx 0x%02x %+v", b.id, addr, err)
	if err == nil && len(r) > 0 {
		b.l.Printf("%s", hexDump(r))
	}
	return err
}

func (b *busDebug) SetSpeed(f physic.Frequency) error {
	b.l.Printf("%5s >>  speed %s", b.id, f)
	err := b.next.SetSpeed(f)
	b.l.Printf("%5s <<  speed %#v", b.id, err)
	return err
}
