package supplychain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DatePlaceholder is rendered whenever the backend ships a date the
// service cannot make sense of.
const DatePlaceholder = "N/A"

// FlexFloat decodes backend numerics that arrive either as JSON
// numbers or as numeric strings ("45.50"). Garbage coerces to zero
// instead of failing the whole page.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt is FlexFloat for integer fields.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = FlexInt(f)
	return nil
}

// FlexBool accepts true, "true" and "True"; everything else is false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(data)), `"`))
	*b = FlexBool(strings.EqualFold(s, "true"))
	return nil
}

// wireNumber is the integer container the graph database wraps date
// components in: {"low": 2024, "high": 0}. Only low is meaningful.
// Plain numbers are accepted too.
type wireNumber struct {
	Low int64
}

func (n *wireNumber) UnmarshalJSON(data []byte) error {
	s := bytes.TrimSpace(data)
	if len(s) == 0 || string(s) == "null" {
		n.Low = 0
		return nil
	}
	if s[0] == '{' {
		var obj struct {
			Low json.Number `json:"low"`
		}
		if err := json.Unmarshal(s, &obj); err != nil {
			n.Low = 0
			return nil
		}
		if v, err := obj.Low.Int64(); err == nil {
			n.Low = v
		}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(s, &num); err != nil {
		n.Low = 0
		return nil
	}
	if v, err := num.Int64(); err == nil {
		n.Low = v
	} else if fv, err := num.Float64(); err == nil {
		n.Low = int64(fv)
	}
	return nil
}

// WireDate flattens the nested {year:{low},month:{low},day:{low}}
// calendar shape to YYYY-MM-DD. Plain date strings pass through.
// Malformed input never fails; it renders as DatePlaceholder.
type WireDate struct {
	value string
	valid bool
}

func (d *WireDate) UnmarshalJSON(data []byte) error {
	s := bytes.TrimSpace(data)
	if len(s) == 0 || string(s) == "null" {
		*d = WireDate{}
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(s, &str); err != nil || strings.TrimSpace(str) == "" {
			*d = WireDate{}
			return nil
		}
		*d = WireDate{value: strings.TrimSpace(str), valid: true}
		return nil
	}
	var obj struct {
		Year  *wireNumber `json:"year"`
		Month *wireNumber `json:"month"`
		Day   *wireNumber `json:"day"`
	}
	if err := json.Unmarshal(s, &obj); err != nil || obj.Year == nil || obj.Month == nil || obj.Day == nil {
		*d = WireDate{}
		return nil
	}
	if obj.Year.Low == 0 {
		*d = WireDate{}
		return nil
	}
	*d = WireDate{
		value: fmt.Sprintf("%04d-%02d-%02d", obj.Year.Low, obj.Month.Low, obj.Day.Low),
		valid: true,
	}
	return nil
}

func (d WireDate) String() string {
	if !d.valid {
		return DatePlaceholder
	}
	return d.value
}
