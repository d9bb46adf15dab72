package config

import (
	"errors"

	"github.com/ezrec/bunny/translate"
)

var f = translate.From

var (
	ErrConfigLimit = errors.New(f("tick limit negative"))
)

// ErrConfigKey is an unknown configuration key.
type ErrConfigKey string

func (err ErrConfigKey) Error() string {
	return f("'%v' is not a configuration key", string(err))
}

// ErrConfigRegister is an unknown register name.
type ErrConfigRegister string

func (err ErrConfigRegister) Error() string {
	return f("'%v' is not a register", string(err))
}
