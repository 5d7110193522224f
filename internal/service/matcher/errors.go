package matcher

import "errors"

var ErrInternal = errors.New("matcher: internal error")
