package pathstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// decodeTree parses stored text into a generic tree. Numbers stay
// json.Number so re-encoding a spliced document reproduces them exactly.
func decodeTree(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

// encodeValue serializes a caller value. Failures wrap types.ErrEncoding and
// the codec's own error.
func encodeValue(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrEncoding, err)
	}
	return data, nil
}

// decodeAs converts a resolved tree into T by re-encoding it. A shape that
// does not fit T yields the zero value of T.
func decodeAs[T any](v any) T {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero
	}
	return out
}
