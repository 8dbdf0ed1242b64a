// Package payload shapes dashboard form submissions before they reach the
// database: blank strings become NULL, numeric fields arrive as either
// numbers or strings, and date and time inputs are combined.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// OptionalString trims s. Nil, empty and whitespace-only values become nil.
func OptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// TrimmedOr returns the trimmed value of s, or def when s is nil.
func TrimmedOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return strings.TrimSpace(*s)
}

// Slugify lowercases name and collapses every run of characters outside
// [a-z0-9] into a single dash, without leading or trailing dashes.
func Slugify(name string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// BoolOr returns *b, or def when the field was absent.
func BoolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// Float is a JSON number that may also arrive as a numeric string. Null and
// blank strings leave it unset.
type Float struct {
	Value float64
	Set   bool
}

func (f *Float) UnmarshalJSON(data []byte) error {
	v, ok, err := parseNumber(data)
	if err != nil {
		return err
	}
	*f = Float{Value: v, Set: ok}
	return nil
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Or returns def when f is unset or zero.
func (f Float) Or(def float64) float64 {
	if !f.Set || f.Value == 0 {
		return def
	}
	return f.Value
}

// Ptr returns nil when f is unset.
func (f Float) Ptr() *float64 {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// NonZeroPtr returns nil when f is unset or zero.
func (f Float) NonZeroPtr() *float64 {
	if !f.Set || f.Value == 0 {
		return nil
	}
	v := f.Value
	return &v
}

// Int is the integer counterpart of Float; fractional input is truncated.
type Int struct {
	Value int
	Set   bool
}

func (i *Int) UnmarshalJSON(data []byte) error {
	v, ok, err := parseNumber(data)
	if err != nil {
		return err
	}
	*i = Int{Value: int(v), Set: ok}
	return nil
}

func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Set {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

// Or returns def when i is unset or zero.
func (i Int) Or(def int) int {
	if !i.Set || i.Value == 0 {
		return def
	}
	return i.Value
}

// Ptr returns nil when i is unset.
func (i Int) Ptr() *int {
	if !i.Set {
		return nil
	}
	v := i.Value
	return &v
}

// NonZeroPtr returns nil when i is unset or zero.
func (i Int) NonZeroPtr() *int {
	if !i.Set || i.Value == 0 {
		return nil
	}
	v := i.Value
	return &v
}

func parseNumber(data []byte) (float64, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, false, nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("payload: %q is not a number", s)
		}
		return v, true, nil
	}

	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return 0, false, fmt.Errorf("payload: expected number or numeric string, got %s", string(trimmed))
	}
	return v, true, nil
}

var ErrInvalidJSON = errors.New("value is not valid JSON")

// JSONValue normalises a JSON editor field. A JSON string is treated as the
// editor's text and must itself contain JSON; any other JSON value is kept
// as sent. Missing or null input becomes {}.
func JSONValue(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return datatypes.JSON("{}"), nil
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, ErrInvalidJSON
		}
		text = strings.TrimSpace(text)
		if !json.Valid([]byte(text)) {
			return nil, ErrInvalidJSON
		}
		return datatypes.JSON(text), nil
	}

	if !json.Valid(trimmed) {
		return nil, ErrInvalidJSON
	}
	return datatypes.JSON(trimmed), nil
}
