package ds1307

import (
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddress is the fixed 7-bit I²C address of the DS1307.
const DefaultAddress = 0x68

// Config is the configuration object for a device.
type Config struct {
	// I2C contains I²C specific configuration.
	I2C I2CConfig
	// Debug is used for debug output. Every bus transaction is logged when
	// set.
	Debug Logger
}

type I2CConfig struct {
	Address uint16
	Bus     i2c.Bus
}

// ConfigI2CDefault returns a default config for a DS1307 on bus.
func ConfigI2CDefault(bus i2c.Bus) Config {
	return Config{
		I2C: I2CConfig{
			Address: DefaultAddress,
			Bus:     bus,
		},
	}
}
