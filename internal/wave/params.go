package wave

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Params holds the physical constants of the damped wave.
type Params struct {
	// Beta is the exponential damping rate of the amplitude over time.
	Beta float64
	// Omega is the angular frequency of the cosine phase.
	Omega float64
	// Lambda is the rate at which the wavefront radius grows, in cells per second.
	Lambda float64
}

// DefaultParams returns the parameters the application starts with.
func DefaultParams() Params {
	return Params{Beta: 0.3, Omega: 5, Lambda: 100}
}

// Keys used for the parameters in maps, config files and front ends.
const (
	KeyBeta   = "beta"
	KeyOmega  = "omega"
	KeyLambda = "lambda"
)

// ErrInvalidParameter classifies every rejected parameter value.
var ErrInvalidParameter = errors.New("invalid wave parameter")

// ParamError reports a single rejected parameter value.
type ParamError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: cannot use %q: %v", e.Key, e.Value, e.Err)
}

// Unwrap exposes both ErrInvalidParameter and the underlying cause.
func (e *ParamError) Unwrap() []error {
	return []error{ErrInvalidParameter, e.Err}
}

var errNotPositive = errors.New("must be a finite number greater than zero")

// Validate reports every field that is not a finite positive number.
// Generation itself does not call this; the controller does before commit.
func (p Params) Validate() error {
	var errs []error
	check := func(key string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, &ParamError{Key: key, Value: strconv.FormatFloat(v, 'g', -1, 64), Err: errNotPositive})
		}
	}
	check(KeyBeta, p.Beta)
	check(KeyOmega, p.Omega)
	check(KeyLambda, p.Lambda)
	return errors.Join(errs...)
}

// ParseParams parses the three text fields of a commit. Either all three
// values are valid and returned, or the error lists every bad field and the
// returned Params is zero.
func ParseParams(beta, omega, lambda string) (Params, error) {
	var errs []error
	parse := func(key, text string) float64 {
		v, err := parseValue(key, text)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	p := Params{
		Beta:   parse(KeyBeta, beta),
		Omega:  parse(KeyOmega, omega),
		Lambda: parse(KeyLambda, lambda),
	}
	if len(errs) > 0 {
		return Params{}, errors.Join(errs...)
	}
	return p, nil
}

// ParamsFromMap applies key/value overrides on top of prior. Unknown keys are
// ignored. A malformed value rejects the whole update and prior is returned
// unchanged alongside the error.
func ParamsFromMap(cfg map[string]string, prior Params) (Params, error) {
	if cfg == nil {
		return prior, nil
	}
	next := prior
	var errs []error
	apply := func(key string, dst *float64) {
		text, ok := cfg[key]
		if !ok {
			return
		}
		v, err := parseValue(key, text)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = v
	}
	apply(KeyBeta, &next.Beta)
	apply(KeyOmega, &next.Omega)
	apply(KeyLambda, &next.Lambda)
	if len(errs) > 0 {
		return prior, errors.Join(errs...)
	}
	return next, nil
}

func parseValue(key, text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &ParamError{Key: key, Value: text, Err: err}
	}
	if !(v > 0) || math.IsInf(v, 0) {
		return 0, &ParamError{Key: key, Value: text, Err: errNotPositive}
	}
	return v, nil
}

// Format renders a value the way front ends show it in a text field.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
