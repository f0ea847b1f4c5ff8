package wave

import (
	"errors"
	"strings"
	"testing"
)

func TestParseParamsAcceptsNumbers(t *testing.T) {
	p, err := ParseParams("0.5", " 7 ", "1e2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != (Params{Beta: 0.5, Omega: 7, Lambda: 100}) {
		t.Fatalf("parsed %+v", p)
	}
}

func TestParseParamsRejectsText(t *testing.T) {
	p, err := ParseParams("abc", "5", "100")
	if err == nil {
		t.Fatal("expected an error for non-numeric beta")
	}
	if p != (Params{}) {
		t.Fatalf("rejected parse must return zero params, got %+v", p)
	}
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("error %v does not match ErrInvalidParameter", err)
	}
	var pe *ParamError
	if !errors.As(err, &pe) || pe.Key != KeyBeta || pe.Value != "abc" {
		t.Fatalf("expected a ParamError for beta, got %#v", pe)
	}
}

func TestParseParamsReportsEveryBadField(t *testing.T) {
	_, err := ParseParams("x", "-1", "NaN")
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	for _, key := range []string{KeyBeta, KeyOmega, KeyLambda} {
		if !strings.Contains(msg, key) {
			t.Fatalf("error %q does not mention %s", msg, key)
		}
	}
}

func TestParamsFromMapKeepsPriorOnError(t *testing.T) {
	prior := DefaultParams()
	got, err := ParamsFromMap(map[string]string{"omega": "9", "beta": "oops"}, prior)
	if err == nil {
		t.Fatal("expected an error")
	}
	if got != prior {
		t.Fatalf("prior must be kept on error, got %+v", got)
	}

	got, err = ParamsFromMap(map[string]string{"omega": "9", "unused": "x"}, prior)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Omega != 9 || got.Beta != prior.Beta || got.Lambda != prior.Lambda {
		t.Fatalf("partial override gave %+v", got)
	}

	if got, err := ParamsFromMap(nil, prior); err != nil || got != prior {
		t.Fatalf("nil map must be a no-op, got %+v, %v", got, err)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if err := (Params{Beta: 0, Omega: 1, Lambda: 1}).Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("zero beta must be rejected, got %v", err)
	}
}
