package domain

import "errors"

var (
	ErrOutcomeNotFound       = errors.New("outcome not found")
	ErrUnknownRecommendation = errors.New("unknown recommendation type")
)
