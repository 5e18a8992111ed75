package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Upstream providers are loose about scalar types: the same field can arrive
// as a number, a numeric string, a bool or null depending on the endpoint.

// FlexInt is an optional integer.
type FlexInt struct {
	Value int
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	raw, isNull, err := scalarText(b)
	if err != nil {
		return err
	}
	switch {
	case isNull || raw == "":
		*f = FlexInt{}
		return nil
	case raw == "true":
		*f = FlexInt{Value: 1, Valid: true}
		return nil
	case raw == "false":
		*f = FlexInt{Value: 0, Valid: true}
		return nil
	}

	if n, err := strconv.Atoi(raw); err == nil {
		*f = FlexInt{Value: n, Valid: true}
		return nil
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(fl) && !math.IsInf(fl, 0) {
		*f = FlexInt{Value: int(fl), Valid: true}
		return nil
	}
	return fmt.Errorf("api: cannot decode %s as integer", b)
}

// Ptr returns nil when the value was absent.
func (f FlexInt) Ptr() *int {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// FlexFloat is an optional float.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	raw, isNull, err := scalarText(b)
	if err != nil {
		return err
	}
	if isNull || raw == "" {
		*f = FlexFloat{}
		return nil
	}
	fl, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(fl) || math.IsInf(fl, 0) {
		return fmt.Errorf("api: cannot decode %s as number", b)
	}
	*f = FlexFloat{Value: fl, Valid: true}
	return nil
}

func (f FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// CellInt is a FlexInt for per-row cells. Undecodable input leaves it absent
// instead of failing the surrounding document.
type CellInt struct {
	FlexInt
}

func (c *CellInt) UnmarshalJSON(b []byte) error {
	if err := c.FlexInt.UnmarshalJSON(b); err != nil {
		c.FlexInt = FlexInt{}
	}
	return nil
}

// FlexString keeps a value as display text: strings as-is, numbers in their
// literal form, null as "", objects and arrays as compact JSON.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return err
		}
		*f = FlexString(buf.String())
		return nil
	}

	raw, isNull, err := scalarText(b)
	if err != nil {
		return err
	}
	if isNull {
		*f = ""
		return nil
	}
	*f = FlexString(raw)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// scalarText returns the text of a JSON scalar, unquoting strings.
func scalarText(b []byte) (string, bool, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", true, nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		return strings.TrimSpace(s), false, nil
	case '{', '[':
		return "", false, fmt.Errorf("api: expected scalar, got %s", b)
	}
	return string(b), false, nil
}
