package repository

import "errors"

var (
	ErrRedisConnection    = errors.New("redis connection error")
	ErrInvalidOutcomeData = errors.New("invalid outcome data")
)
