// Package ds1307 is a driver for the Maxim Integrated DS1307 real-time clock
// in Go.
//
// It talks to the device over I²C through a periph.io bus, converts the
// binary-coded-decimal registers into plain integers and validates every
// value before it reaches the bus.
//
// Copyright (c) 2024 Northvolt AB and the ds1307 authors.
//
// # Register access
//
// Every getter reads the device. Nothing is cached, so two calls may observe
// the clock ticking in between. Use DateTime to read all time registers in
// a single burst.
//
// # Datasheets
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/DS1307.pdf
package ds1307
