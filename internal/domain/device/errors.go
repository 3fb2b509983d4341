package device

import "errors"

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrUnknownIMEI    = errors.New("no device registered for IMEI")
)
