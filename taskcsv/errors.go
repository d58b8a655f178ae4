package taskcsv

import (
	"errors"
	"fmt"
)

var (
	ErrFormat         = errors.New("invalid task csv")
	ErrMissingColumns = fmt.Errorf("%w: csv must contain id, name, and description columns", ErrFormat)
)
