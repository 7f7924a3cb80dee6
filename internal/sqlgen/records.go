// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sqlgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/pedagogy-tools/pkg/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseRecords decodes a JSON array of exercise objects. Malformed JSON, a
// top-level value that is not an array, and array elements that are not
// objects all fail with ErrFormat.
func ParseRecords(r io.Reader) ([]types.Exercise, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var top json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if kind(top) != '[' {
		return nil, fmt.Errorf("%w: the JSON file must contain a list of exercises", ErrFormat)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(top, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	records := make([]types.Exercise, len(elems))
	for i, raw := range elems {
		if kind(raw) != '{' {
			return nil, fmt.Errorf("%w: exercise %d is not a JSON object", ErrFormat, i+1)
		}
		var e types.Exercise
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("%w: exercise %d: %v", ErrFormat, i+1, err)
		}
		records[i] = e
	}
	return records, nil
}

// kind returns the first significant byte of a JSON value: '[', '{', '"',
// 'n', 't', 'f', or a number's first character. Zero means empty.
func kind(raw json.RawMessage) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// field is the decoded state of one label in a record.
type field struct {
	present bool
	null    bool
	text    string
	falsy   bool
}

// lookup converts the raw value stored under label to text. Strings are
// taken verbatim, numbers keep their JSON spelling, booleans become
// true/false, and arrays and objects are re-encoded compactly.
func lookup(e types.Exercise, label string) field {
	raw, ok := e[label]
	if !ok {
		return field{falsy: true}
	}

	f := field{present: true}
	switch kind(raw) {
	case 'n':
		f.null, f.falsy = true, true
	case '"':
		// Already validated by ParseRecords; a failure here leaves text empty.
		_ = json.Unmarshal(raw, &f.text)
		f.falsy = f.text == ""
	case 't', 'f':
		var b bool
		_ = json.Unmarshal(raw, &b)
		f.text = strconv.FormatBool(b)
		f.falsy = !b
	case '[', '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			buf.Reset()
			buf.Write(raw)
		}
		f.text = buf.String()
		f.falsy = f.text == "[]" || f.text == "{}"
	default:
		f.text = string(bytes.TrimSpace(raw))
		n, err := strconv.ParseFloat(f.text, 64)
		f.falsy = err == nil && n == 0
	}
	return f
}
