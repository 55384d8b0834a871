package ds1307

// Register offsets.
const (
	regSeconds = 0x00
	regMinutes = 0x01
	regHours   = 0x02
	regWeekday = 0x03
	regDay     = 0x04
	regMonth   = 0x05
	regYear    = 0x06
	regControl = 0x07
	regRAM     = 0x08
)

// timeRegisters is the number of registers from regSeconds to regYear.
const timeRegisters = regYear - regSeconds + 1

// Bit flags.
const (
	// flagClockHalt stops the oscillator when set. Shares regSeconds.
	flagClockHalt = 0b1000_0000
	// flagHour12 selects 12-hour mode. Always written as 0.
	flagHour12 = 0b0100_0000
	// flagPM is set for PM in 12-hour mode.
	flagPM = 0b0010_0000

	flagOut  = 0b1000_0000
	flagSQWE = 0b0001_0000
	maskRate = 0b0000_0011
)

// Value masks applied before decoding. Bits outside of the mask are flags
// or always read as zero.
const (
	maskSeconds = 0x7f
	maskMinutes = 0x7f
	maskHours24 = 0x3f
	maskHours12 = 0x1f
	maskWeekday = 0x07
	maskDay     = 0x3f
	maskMonth   = 0x1f
)

// century is added to the two digit year register. The device cannot store
// any other century.
const century = 2000

// bcdToDecimal transforms a number in packed BCD format to decimal.
func bcdToDecimal(bcd byte) int {
	return int(bcd>>4)*10 + int(bcd&0x0f)
}

// decimalToBCD transforms a decimal number in the range 0-99 to packed BCD.
func decimalToBCD(dec int) byte {
	return byte(dec/10)<<4 | byte(dec%10)
}

// decodeHours returns the hour in the range 0-23 regardless of the mode the
// register was written in.
func decodeHours(data byte) int {
	if data&flagHour12 == 0 {
		return bcdToDecimal(data & maskHours24)
	}
	h := bcdToDecimal(data & maskHours12)
	if h == 12 {
		h = 0
	}
	if data&flagPM != 0 {
		h += 12
	}
	return h
}
