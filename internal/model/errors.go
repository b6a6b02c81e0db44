package model

import "errors"

// ErrUnknownCountry is returned when no providers are configured for a
// transaction's country. It is the only error the routing engine raises;
// declines are results, not errors.
var ErrUnknownCountry = errors.New("no providers configured for country")

// ErrInvalidStrategy is returned for an unrecognized strategy tag, before any
// routing begins.
var ErrInvalidStrategy = errors.New("invalid routing strategy")
