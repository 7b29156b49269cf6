package snare

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
)

// ParseInt converts a raw parameter to an integer, ignoring any comma
// separators ("1,000" parses as 1000). Example usage:
//
//	count := snare.AddFunc(s, snare.ParseInt, "--count")
func ParseInt(raw string) (int, error) {
	v, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return 0, fmt.Errorf("Invalid parameter %q", raw)
	}

	return v, nil
}

// ParseFloat converts a raw parameter to a float64, ignoring any comma
// separators.
func ParseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("Invalid parameter %q", raw)
	}

	return v, nil
}

// ParseDuration converts a raw parameter with [time.ParseDuration].
func ParseDuration(raw string) (time.Duration, error) {
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("Invalid parameter %q", raw)
	}

	return v, nil
}

// Check compiles a boolean expr-lang expression over the variable "value"
// (the raw parameter string) into a pass-through converter. Values for
// which the expression is false are rejected with a validation error:
//
//	port := snare.AddFunc(s,
//	    snare.Check(`value matches "^[0-9]+$" && int(value) < 65536`),
//	    "--port")
//
// Check panics with [ErrInvalidCheck] if the expression does not compile;
// a bad expression is a configuration fault, not user input.
func Check(expression string) ConvertFunc[string] {
	program, err := expr.Compile(
		expression,
		expr.Env(map[string]any{"value": ""}),
		expr.AsBool(),
	)
	if err != nil {
		panic(ErrInvalidCheck.Wrapf("%q", expression).Wrapf("%v", err))
	}

	return func(raw string) (string, error) {
		out, err := expr.Run(program, map[string]any{"value": raw})
		if err != nil {
			return "", fmt.Errorf("Invalid parameter %q: %v", raw, err)
		}

		if ok, _ := out.(bool); !ok {
			return "", fmt.Errorf("%q failed check %q", raw, expression)
		}

		return raw, nil
	}
}
