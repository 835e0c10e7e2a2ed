package dashboard

import (
	"errors"

	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/display"
	"github.com/tOgg1/pricedisplay/internal/prices"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitUnexpected = 1
	ExitConfig     = 2
	ExitDisplay    = 3
	ExitData       = 4
)

// ExitError attaches an exit code to an error that ends the program.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	var (
		exitErr    *ExitError
		sizeErr    *display.SizeError
		posErr     *display.PositionError
		layoutErr  *display.CollectionSizeError
		missingErr *config.MissingOptionError
		requestErr *prices.RequestError
		parseErr   *prices.ParseError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.As(err, &sizeErr), errors.As(err, &posErr), errors.As(err, &layoutErr):
		return ExitDisplay
	case errors.As(err, &missingErr), errors.Is(err, config.ErrConfigExists):
		return ExitConfig
	case errors.Is(err, prices.ErrNoData), errors.As(err, &requestErr), errors.As(err, &parseErr):
		return ExitData
	default:
		return ExitUnexpected
	}
}

// withCode wraps err with code unless it already carries one.
func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: code, Err: err}
}
