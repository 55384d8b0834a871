package nvram

// crc16 calculates the CRC-16 (polynomial 0x8005, bits processed LSB first,
// no final reflection) of data.
func crc16(data []byte) uint16 {
	const polynom uint16 = 0x8005
	var crc uint16

	for _, b := range data {
		for j := 0; j < 8; j++ {
			dataBit := uint16(b>>j) & 1
			crcBit := crc >> 15
			crc <<= 1
			if dataBit != crcBit {
				crc ^= polynom
			}
		}
	}

	return crc
}
