package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeConfig, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeRange, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeShiftExhausted, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	cases := map[ErrorCode]string{
		ErrorCodeRange:          "range",
		ErrorCodeConfig:         "config",
		ErrorCodeShiftExhausted: "shift_exhausted",
		ErrorCodeUnknown:        "unknown",
		ErrorCode(4242):         "unknown",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Fatalf("String(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeRange, "out of table")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	e4 := Wrap(src, ErrorCodeConfig, fmt.Sprintf("entity %s", "XX"))
	if want := "entity XX: root"; e4.Error() != want {
		t.Fatalf("Wrap().Error = %q, want %q", e4.Error(), want)
	}

	if got, ok := As(e4); !ok || got.Code() != ErrorCodeConfig {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	// WithField (copy-on-write)
	e5 := Wrap(src, ErrorCodeValidation, "oops")
	e6 := WithField(e5, "rules[3].day")
	if fe, ok := As(e6); !ok || fe.Field() != "rules[3].day" {
		t.Fatalf("WithField failed")
	}
	if fe0, _ := As(e5); fe0.Field() != "" {
		t.Fatalf("copy-on-write mutated original")
	}
	if WithField(src, "x") != src {
		t.Fatalf("WithField should pass foreign errors through")
	}

	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", wf)
	}
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != "root" {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", wf)
	}
	if wf := WireFrom(e4); wf.Code != ErrorCodeConfig || wf.Message != "entity XX" {
		t.Fatalf("WireFrom(ours) mismatch: %+v", wf)
	}

	if st := HTTPStatus(e3); st != http.StatusUnprocessableEntity {
		t.Fatalf("HTTPStatus mismatch: %d", st)
	}

	if !IsCode(InvalidArgf("x"), ErrorCodeInvalidArgument) ||
		!IsCode(Validationf("x"), ErrorCodeValidation) ||
		!IsCode(JSONErrf("x"), ErrorCodeJSON) ||
		!IsCode(PanicErrf("x"), ErrorCodePanic) ||
		!IsCode(Unavailablef("x"), ErrorCodeUnavailable) ||
		!IsCode(Rangef("x"), ErrorCodeRange) ||
		!IsCode(Configf("x"), ErrorCodeConfig) ||
		!IsCode(ShiftExhaustedf("x"), ErrorCodeShiftExhausted) ||
		!IsCode(Internalf("x"), ErrorCodeUnknown) {
		t.Fatalf("sugar helpers code mismatch")
	}

	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", e3))
	if !IsCode(deep, ErrorCodeRange) {
		t.Fatalf("IsCode should see through fmt wrapping")
	}
}

func TestRewrap(t *testing.T) {
	if Rewrap(nil, ErrorCodeUnknown, "x") != nil {
		t.Fatalf("Rewrap(nil) should be nil")
	}
	inner := Rangef("year 2101 outside 1947..2100")
	got := Rewrap(inner, ErrorCodeUnknown, "rule %s", "hanukkah")
	if !IsCode(got, ErrorCodeRange) {
		t.Fatalf("Rewrap should keep inner code, got %v", CodeOf(got))
	}
	if want := "rule hanukkah: year 2101 outside 1947..2100"; got.Error() != want {
		t.Fatalf("Rewrap().Error = %q, want %q", got.Error(), want)
	}
	foreign := Rewrap(stderrs.New("boom"), ErrorCodeValidation, "catalog")
	if !IsCode(foreign, ErrorCodeValidation) {
		t.Fatalf("Rewrap should apply fallback to foreign errors")
	}
	withField := Rewrap(WithField(inner, "hanukkah"), ErrorCodeUnknown, "catalog")
	if e, _ := As(withField); e.Field() != "hanukkah" {
		t.Fatalf("Rewrap should keep the field, got %q", e.Field())
	}
	if !stderrs.Is(got, inner) {
		t.Fatalf("Rewrap should keep the chain")
	}
}
