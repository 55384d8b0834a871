// Package nvram stores a small checksummed record in the battery backed RAM
// of a DS1307.
//
// The record occupies the start of the RAM:
//
//	magic (1) | length (1) | payload (length) | crc16 (2, big-endian)
//
// The checksum covers magic, length and payload. A blank or corrupted RAM
// is reported by Load instead of returning garbage.
package nvram

import (
	"errors"

	"github.com/northvolt/go-ds1307/ds1307"
	"golang.org/x/crypto/cryptobyte"
)

const (
	magic = 0xd5

	// overhead is magic, length and checksum.
	overhead = 4

	// MaxPayload is the largest payload that fits in the RAM.
	MaxPayload = ds1307.RAMSize - overhead
)

var (
	ErrTooLarge = errors.New("nvram: payload too large")
	ErrNoRecord = errors.New("nvram: no record")
	ErrChecksum = errors.New("nvram: checksum mismatch")
)

// RAM is the battery backed memory of the device.
//
// *ds1307.Dev implements RAM.
type RAM interface {
	ReadRAM(offset int, p []byte) error
	WriteRAM(offset int, p []byte) error
}

var _ RAM = (*ds1307.Dev)(nil)

// Marshal encodes payload into a record.
func Marshal(payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, ErrTooLarge
	}
	var b cryptobyte.Builder
	b.AddUint8(magic)
	b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(payload)
	})
	body, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	b.AddUint16(crc16(body))
	return b.Bytes()
}

// Unmarshal decodes the record at the start of b and returns its payload.
//
// Trailing bytes after the record are ignored.
func Unmarshal(b []byte) ([]byte, error) {
	var (
		m       uint8
		payload cryptobyte.String
		crc     uint16
	)
	s := cryptobyte.String(b)
	if !s.ReadUint8(&m) || m != magic {
		return nil, ErrNoRecord
	}
	if !s.ReadUint8LengthPrefixed(&payload) || len(payload) > MaxPayload {
		return nil, ErrNoRecord
	}
	if !s.ReadUint16(&crc) {
		return nil, ErrNoRecord
	}
	if crc16(b[:2+len(payload)]) != crc {
		return nil, ErrChecksum
	}
	return append([]byte(nil), payload...), nil
}

// Store writes payload as a record to ram in a single burst.
func Store(ram RAM, payload []byte) error {
	rec, err := Marshal(payload)
	if err != nil {
		return err
	}
	return ram.WriteRAM(0, rec)
}

// Load reads the whole RAM and returns the stored payload.
func Load(ram RAM) ([]byte, error) {
	var buf [ds1307.RAMSize]byte
	if err := ram.ReadRAM(0, buf[:]); err != nil {
		return nil, err
	}
	return Unmarshal(buf[:])
}

// Clear zeroes the whole RAM.
func Clear(ram RAM) error {
	var buf [ds1307.RAMSize]byte
	return ram.WriteRAM(0, buf[:])
}
