package domain

import "errors"

// ErrInvalidInput marks failures caused by out-of-domain input values:
// unknown volatility labels, negative prices or ratios, non-positive funds,
// negative day counts. Callers detect it with errors.Is and decide whether
// to reject the request or substitute a default.
var ErrInvalidInput = errors.New("invalid input")
