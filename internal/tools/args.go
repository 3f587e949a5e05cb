// ABOUTME: Typed accessors over a tool call's decoded JSON arguments
// ABOUTME: Arguments are schema-validated before Execute, so accessors only guard types

package tools

import (
	"fmt"
	"math"

	"github.com/mauromedda/automate-go/internal/agent"
)

// args is a decoded tool-call argument object.
type args map[string]any

func (a args) str(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

func (a args) strOr(key, def string) string {
	if s, ok := a[key].(string); ok {
		return s
	}
	return def
}

// number reports the integral value at key. JSON numbers decode as float64;
// non-finite or out-of-range values are rejected.
func (a args) number(key string) (int, bool) {
	switch n := a[key].(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func (a args) integer(key string) (int, error) {
	v, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}
	n, ok := a.number(key)
	if !ok {
		return 0, fmt.Errorf("parameter %q must be an integer, got %T", key, v)
	}
	return n, nil
}

func (a args) integerOr(key string, def int) int {
	if n, ok := a.number(key); ok {
		return n
	}
	return def
}

// point reads the screen coordinate pair x, y.
func (a args) point() (x, y int, err error) {
	if x, err = a.integer("x"); err != nil {
		return 0, 0, err
	}
	if y, err = a.integer("y"); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// strs reads a non-empty array of strings.
func (a args) strs(key string) ([]string, error) {
	v, ok := a[key]
	if !ok {
		return nil, fmt.Errorf("missing required parameter %q", key)
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("parameter %q must be an array, got %T", key, v)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("parameter %q must not be empty", key)
	}
	out := make([]string, len(raw))
	for i, elem := range raw {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q[%d] must be a string, got %T", key, i, elem)
		}
		out[i] = s
	}
	return out, nil
}

func errResult(err error) agent.ToolResult {
	return agent.Failure(err.Error())
}
