package commands

import "errors"

// Static errors used throughout the commands package.
var (
	ErrInvalidComponent = errors.New("invalid component filter, expected <name>:<value>")
)
