package service

import "errors"

var (
	errSendFailed = errors.New("smtp: mailbox unavailable")
	errDBDown     = errors.New("connection refused")
)
