package queue

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind enumerates the value shapes an answer may take.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindStrings
	// KindOther keeps any JSON the closed set does not cover so that it
	// survives a round trip for display and export.
	KindOther
)

// Value is one answer in a questionnaire.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []string
	raw  json.RawMessage
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }
func StringsValue(s ...string) Value { return Value{kind: KindStrings, list: append([]string(nil), s...)} }
func NullValue() Value { return Value{} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload, or "" for any other kind.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Number returns the numeric payload and whether the value was a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Bool returns the boolean payload and whether the value was a boolean.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Strings returns the list payload, or nil for any other kind.
func (v Value) Strings() []string {
	if v.kind != KindStrings {
		return nil
	}
	return v.list
}

// Len returns the number of elements when the value is a JSON array of any
// element type, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindStrings:
		return len(v.list)
	case KindOther:
		if len(v.raw) == 0 || v.raw[0] != '[' {
			return 0
		}
		var items []json.RawMessage
		if err := json.Unmarshal(v.raw, &items); err != nil {
			return 0
		}
		return len(items)
	}
	return 0
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindStrings:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindOther:
		return v.raw, nil
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err == nil {
			*v = StringsValue(list...)
			return nil
		}
		*v = Value{kind: KindOther, raw: append(json.RawMessage(nil), data...)}
	case '{':
		if !json.Valid(data) {
			return errors.New("invalid answer value")
		}
		*v = Value{kind: KindOther, raw: append(json.RawMessage(nil), data...)}
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid answer value: %w", err)
		}
		*v = NumberValue(n)
	}
	return nil
}

// Answers is the free-form questionnaire attached to an entry.
type Answers map[string]Value

// Get returns the value for key, or a null value when absent.
func (a Answers) Get(key string) Value {
	if a == nil {
		return Value{}
	}
	return a[key]
}

// Str returns the string answer for key, or "" when absent or not a string.
func (a Answers) Str(key string) string {
	return a.Get(key).Str()
}

// Value implements driver.Valuer so Answers can be written to a JSONB column.
func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB columns.
func (a *Answers) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = Answers{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("incompatible type for answers")
	}
	if len(data) == 0 || string(data) == "null" {
		*a = Answers{}
		return nil
	}
	result := make(Answers)
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}
	*a = result
	return nil
}
