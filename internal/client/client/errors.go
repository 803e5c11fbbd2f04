package client

import "errors"

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrBadResponse = errors.New("bad server response")
)
