package io

import (
	"errors"

	"github.com/ezrec/rdp9/translate"
)

var f = translate.From

var (
	// Coprocessor errors
	ErrDeviceUnknown = errors.New(f("device unknown"))

	// Device errors
	ErrTapeFull = errors.New(f("tape too long"))
)

// ErrDevice reports an error from, or about, an IOT device.
type ErrDevice struct {
	Device int
	Err    error
}

func (err *ErrDevice) Error() string {
	return f("device %02o: %v", err.Device, err.Err)
}

func (err *ErrDevice) Unwrap() error {
	return err.Err
}
