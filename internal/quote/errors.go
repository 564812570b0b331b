package quote

import "errors"

var ErrUnknownService = errors.New("unknown service")
