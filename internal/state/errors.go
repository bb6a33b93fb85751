package state

import "errors"

var errWriteFailed = errors.New("snapshot write failed")
