package barchart

import (
	"errors"
)

var (
	ErrDegenerateFrame = errors.New("frame has no area")
	ErrRowsDefined     = errors.New("rows are already defined, clear the graph first")
	ErrColumnsDefined  = errors.New("columns are already defined, clear the graph first")
	ErrInvalidCount    = errors.New("invalid count")
	ErrInvalidMargin   = errors.New("margins leave no room for columns")
	ErrNoRows          = errors.New("rows should be created first")
	ErrNoColumns       = errors.New("columns should be created first")
	ErrSingleRow       = errors.New("at least two rows are needed to caption rows")
	ErrInvalidMax      = errors.New("max value should be greater than zero")
	ErrLabelMismatch   = errors.New("number of labels does not match number of columns")
	ErrColumnRange     = errors.New("column index out of range")
	ErrNoScale         = errors.New("rows should be captioned first")
	ErrNegativeValue   = errors.New("negative value")
	ErrGroupRange      = errors.New("group slot out of range")
)
