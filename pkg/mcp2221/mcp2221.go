// Package mcp2221 is an I²C bus over a Microchip MCP2221A USB-HID bridge.
//
// It lets the DS1307 driver run on a host without a native I²C controller:
//
//	bus, err := mcp2221.Open(mcp2221.DefaultConfig())
//	...
//	defer bus.Close()
//	rtc, err := ds1307.NewI2C(bus)
//
// Every command is a 64 byte HID report answered by a 64 byte report.
//
// # Datasheets
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/MCP2221A-Data-Sheet-20005565E.pdf
package mcp2221

import (
	"errors"
	"fmt"
	"time"

	"github.com/karalabe/usb"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// USB identifiers assigned to the MCP2221A.
const (
	VendorID  = 0x04d8
	ProductID = 0x00dd
)

const (
	// msgSize is the size of all command and response reports.
	msgSize = 64
	// chunkSize is the maximum payload of a single I²C report.
	chunkSize = 60
	// clockHz is the internal clock used to derive the I²C divider.
	clockHz = 12_000_000
)

// Commands.
const (
	cmdStatus           byte = 0x10
	cmdI2CWrite         byte = 0x90
	cmdI2CWriteNoStop   byte = 0x94
	cmdI2CRead          byte = 0x91
	cmdI2CReadRepStart  byte = 0x93
	cmdI2CReadGetData   byte = 0x40
	statusCancel        byte = 0x10
	statusSetSpeed      byte = 0x20
	statusSpeedRejected byte = 0x21
)

// I²C engine states reported in status and data responses.
const (
	stateIdle           byte = 0x00
	stateAddrNACK       byte = 0x25
	statePartialData    byte = 0x41
	stateWritingNoStop  byte = 0x45
	stateReadPartial    byte = 0x54
	stateReadComplete   byte = 0x55
	stateReadError      byte = 0x7f
	stateStartTimeout   byte = 0x12
	stateRepStTimeout   byte = 0x17
	stateAddrTimeout    byte = 0x23
	stateWriteTimeout   byte = 0x44
	stateReadTimeout    byte = 0x52
	stateStopTimeout    byte = 0x62
)

const (
	defaultRetries      = 50
	defaultPollInterval = 300 * time.Microsecond
)

// ErrUSBNotSupported is returned when the USB support is missing.
//
// When building, CGO is required for USB support. If CGO is not enabled, the
// bridge will not be available.
var ErrUSBNotSupported = errors.New("mcp2221: usb support is missing")

// Bus errors.
var (
	ErrNACK    = errors.New("mcp2221: i2c nack")
	ErrTimeout = errors.New("mcp2221: i2c timeout")
	ErrBusy    = errors.New("mcp2221: i2c engine busy")

	// ErrShortRead is returned when the bridge completes a read with fewer
	// bytes than requested.
	ErrShortRead = errors.New("mcp2221: i2c short read")
)

// Config selects the bridge to open.
type Config struct {
	// Index is the HID enumeration index of the bridge.
	Index int
	// VendorID of the bridge.
	VendorID uint16
	// ProductID of the bridge.
	ProductID uint16
	// Speed is set on open when non-zero.
	Speed physic.Frequency
}

// DefaultConfig returns a config for the first MCP2221A at 100kHz.
func DefaultConfig() Config {
	return Config{
		VendorID:  VendorID,
		ProductID: ProductID,
		Speed:     100 * physic.KiloHertz,
	}
}

// hidDevice is the part of usb.Device in use.
type hidDevice interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	Close() error
}

// Bus is an I²C bus over an MCP2221A.
type Bus struct {
	dev     hidDevice
	name    string
	retries int
	poll    time.Duration
}

var _ i2c.BusCloser = (*Bus)(nil)

// Open opens the bridge selected by cfg.
func Open(cfg Config) (*Bus, error) {
	if !usb.Supported() {
		return nil, ErrUSBNotSupported
	}

	infos, err := usb.EnumerateHid(cfg.VendorID, cfg.ProductID)
	if err != nil {
		return nil, fmt.Errorf("mcp2221: failed to get hid devices: %w", err)
	}
	if cfg.Index < 0 || cfg.Index >= len(infos) {
		return nil, fmt.Errorf("mcp2221: device index %d out of range, found %d", cfg.Index, len(infos))
	}
	dev, err := infos[cfg.Index].Open()
	if err != nil {
		return nil, fmt.Errorf("mcp2221: %w", err)
	}

	b := newBus(dev, fmt.Sprintf("mcp2221(%d)", cfg.Index))
	if err := b.init(cfg); err != nil {
		_ = dev.Close()
		return nil, err
	}
	return b, nil
}

func newBus(dev hidDevice, name string) *Bus {
	return &Bus{
		dev:     dev,
		name:    name,
		retries: defaultRetries,
		poll:    defaultPollInterval,
	}
}

// init cancels any transfer left behind by a previous user and sets the
// speed.
func (b *Bus) init(cfg Config) error {
	state, err := b.state()
	if err != nil {
		return err
	}
	if state != stateIdle {
		if err := b.cancel(); err != nil {
			return err
		}
	}
	if cfg.Speed > 0 {
		return b.SetSpeed(cfg.Speed)
	}
	return nil
}

func (b *Bus) String() string {
	return b.name
}

// Close closes the HID device.
func (b *Bus) Close() error {
	return b.dev.Close()
}

// SetSpeed sets the I²C clock. It is not retained after a reset of the
// bridge.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	hz := int64(f / physic.Hertz)
	if hz > clockHz/3 || hz < clockHz/258 {
		return fmt.Errorf("mcp2221: invalid speed %s", f)
	}
	msg := makeMsg()
	msg[3] = statusSetSpeed
	msg[4] = byte(clockHz/hz - 3)
	rsp, err := b.send(cmdStatus, msg)
	if err != nil {
		return err
	}
	if rsp[3] == statusSpeedRejected {
		return ErrBusy
	}
	return nil
}

// Tx writes w and then reads into r.
//
// When both are set the read uses a repeated start, so the register pointer
// written in w is kept.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7f {
		return fmt.Errorf("mcp2221: invalid 7-bit address 0x%02x", addr)
	}
	if len(w) > 0xffff || len(r) > 0xffff {
		return errors.New("mcp2221: transfer too large")
	}
	if len(w) > 0 {
		if err := b.write(addr, w, len(r) == 0); err != nil {
			return err
		}
	}
	if len(r) > 0 {
		return b.read(addr, r, len(w) > 0)
	}
	return nil
}

func (b *Bus) write(addr uint16, w []byte, stop bool) error {
	cmd := cmdI2CWrite
	if !stop {
		cmd = cmdI2CWriteNoStop
	}

	for pos := 0; pos < len(w); {
		n := len(w) - pos
		if n > chunkSize {
			n = chunkSize
		}
		msg := makeMsg()
		msg[1] = byte(len(w))
		msg[2] = byte(len(w) >> 8)
		msg[3] = byte(addr << 1)
		copy(msg[4:], w[pos:pos+n])

		if err := b.sendAccepted(cmd, msg, addr); err != nil {
			return err
		}
		// wait for the chunk to leave the bridge buffer
		for i := 0; ; i++ {
			state, err := b.state()
			if err != nil {
				return err
			}
			if state != statePartialData {
				break
			}
			if i >= b.retries {
				return ErrTimeout
			}
			b.sleep()
		}
		pos += n
	}

	for i := 0; ; i++ {
		state, err := b.state()
		if err != nil {
			return err
		}
		switch {
		case state == stateIdle:
			return nil
		case !stop && state == stateWritingNoStop:
			return nil
		case isNACK(state):
			return fmt.Errorf("%w from address 0x%02x", ErrNACK, addr)
		case isTimeout(state):
			return ErrTimeout
		}
		if i >= b.retries {
			return ErrTimeout
		}
		b.sleep()
	}
}

func (b *Bus) read(addr uint16, r []byte, repStart bool) error {
	cmd := cmdI2CRead
	if repStart {
		cmd = cmdI2CReadRepStart
	}
	msg := makeMsg()
	msg[1] = byte(len(r))
	msg[2] = byte(len(r) >> 8)
	msg[3] = byte(addr<<1 | 1)
	if err := b.sendAccepted(cmd, msg, addr); err != nil {
		return err
	}

	for pos := 0; pos < len(r); {
		n, err := b.readChunk(addr, r[pos:])
		if err != nil {
			return err
		}
		pos += n
	}
	return nil
}

// readChunk fetches the next chunk of read data into p.
func (b *Bus) readChunk(addr uint16, p []byte) (int, error) {
	for i := 0; i < b.retries; i++ {
		rsp, err := b.send(cmdI2CReadGetData, makeMsg())
		if err != nil {
			return 0, err
		}
		switch {
		case isNACK(rsp[2]):
			return 0, fmt.Errorf("%w from address 0x%02x", ErrNACK, addr)
		case isTimeout(rsp[2]):
			return 0, ErrTimeout
		case rsp[1] == statePartialData, rsp[3] == stateReadError, rsp[3] == 0,
			rsp[2] != stateReadPartial && rsp[2] != stateReadComplete:
			b.sleep()
			continue
		}
		n := int(rsp[3])
		if n > chunkSize {
			n = chunkSize
		}
		n = copy(p, rsp[4:4+n])
		if rsp[2] == stateReadComplete && n < len(p) {
			return n, fmt.Errorf("%w: %d bytes missing from address 0x%02x", ErrShortRead, len(p)-n, addr)
		}
		return n, nil
	}
	return 0, ErrTimeout
}

// sendAccepted sends a transfer command, retrying while the engine is
// busy.
func (b *Bus) sendAccepted(cmd byte, msg []byte, addr uint16) error {
	for i := 0; i < b.retries; i++ {
		rsp, err := b.send(cmd, msg)
		if err != nil {
			return err
		}
		if rsp[1] == 0x00 {
			return nil
		}
		if isNACK(rsp[2]) {
			return fmt.Errorf("%w from address 0x%02x", ErrNACK, addr)
		}
		if isTimeout(rsp[2]) {
			return ErrTimeout
		}
		b.sleep()
	}
	return ErrBusy
}

func (b *Bus) state() (byte, error) {
	rsp, err := b.send(cmdStatus, makeMsg())
	if err != nil {
		return 0, err
	}
	return rsp[8], nil
}

func (b *Bus) cancel() error {
	msg := makeMsg()
	msg[2] = statusCancel
	_, err := b.send(cmdStatus, msg)
	b.sleep()
	return err
}

// send transmits a command report and returns the response report.
func (b *Bus) send(cmd byte, msg []byte) ([]byte, error) {
	msg[0] = cmd
	if _, err := b.dev.Write(msg); err != nil {
		return nil, fmt.Errorf("mcp2221: write command 0x%02x: %w", cmd, err)
	}
	rsp := makeMsg()
	n, err := b.dev.Read(rsp)
	if err != nil {
		return nil, fmt.Errorf("mcp2221: read response 0x%02x: %w", cmd, err)
	}
	if n < msgSize {
		return nil, fmt.Errorf("mcp2221: short response 0x%02x (%d of %d bytes)", cmd, n, msgSize)
	}
	if rsp[0] != cmd {
		return nil, fmt.Errorf("mcp2221: response 0x%02x to command 0x%02x", rsp[0], cmd)
	}
	return rsp, nil
}

func (b *Bus) sleep() {
	if b.poll > 0 {
		time.Sleep(b.poll)
	}
}

func makeMsg() []byte { return make([]byte, msgSize) }

func isNACK(state byte) bool {
	return state == stateAddrNACK
}

func isTimeout(state byte) bool {
	switch state {
	case stateStartTimeout, stateRepStTimeout, stateAddrTimeout,
		stateWriteTimeout, stateReadTimeout, stateStopTimeout:
		return true
	default:
		return false
	}
}
