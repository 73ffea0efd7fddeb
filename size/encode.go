/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package size

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes s as its human-readable string form.
func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a human-readable size string into s.
func (s *Size) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalYAML encodes s as its human-readable string form.
func (s Size) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes a human-readable size string into s.
func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	v, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalTOML encodes s as its human-readable string form.
func (s Size) MarshalTOML() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalTOML decodes a human-readable size string, or its byte-slice
// form, into s.
func (s *Size) UnmarshalTOML(i interface{}) error {
	switch t := i.(type) {
	case string:
		v, err := Parse(t)
		if err != nil {
			return err
		}
		*s = v
		return nil
	case []byte:
		v, err := ParseByte(t)
		if err != nil {
			return err
		}
		*s = v
		return nil
	default:
		return fmt.Errorf("size: value not in valid format")
	}
}

// MarshalText encodes s as its human-readable string form.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a human-readable size string into s.
func (s *Size) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalCBOR encodes s as its human-readable string form.
func (s Size) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.String())
}

// UnmarshalCBOR decodes a human-readable size string into s.
func (s *Size) UnmarshalCBOR(b []byte) error {
	var str string
	if err := cbor.Unmarshal(b, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalBinary is used by packages that support binary encoding, such as
// encoding/gob; it delegates to MarshalCBOR.
func (s Size) MarshalBinary() ([]byte, error) {
	return s.MarshalCBOR()
}

// UnmarshalBinary is used by packages that support binary encoding, such
// as encoding/gob; it delegates to UnmarshalCBOR.
func (s *Size) UnmarshalBinary(b []byte) error {
	return s.UnmarshalCBOR(b)
}
