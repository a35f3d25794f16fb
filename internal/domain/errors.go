package domain

import "errors"

var (
	ErrInvalidBirthData  = errors.New("invalid birth date or time")
	ErrEmptyChart        = errors.New("source returned no placements")
	ErrChallengePage     = errors.New("anti-bot challenge page")
	ErrSourceUnavailable = errors.New("chart source unavailable")
	ErrNotConfigured     = errors.New("interpreter not configured")
	ErrRateLimited       = errors.New("upstream LLM rate limited")
	ErrUpstreamLLM       = errors.New("upstream LLM failure")
)
