package profiles

import "errors"

var ErrProfileNotFound = errors.New("profiles: profile not found")
