package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

// Args is the ordered constructor-argument tuple supplied at contract creation.
// The tuple must survive a marshal/unmarshal cycle without value drift so that a
// later verification replay submits exactly what was deployed. Numeric values are
// therefore held as json.Number rather than float64.
type Args []any

// NewArgs builds an Args tuple from primitive values, normalizing every numeric
// type to its canonical json.Number form. Supported element types are string,
// bool, json.Number, the built-in integer types and *big.Int.
func NewArgs(values ...any) (Args, error) {
	args := make(Args, 0, len(values))
	for i, v := range values {
		norm, err := normalizeArg(v)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args = append(args, norm)
	}

	return args, nil
}

// MustNewArgs is like NewArgs but panics on unsupported element types. Intended
// for statically known tuples.
func MustNewArgs(values ...any) Args {
	args, err := NewArgs(values...)
	if err != nil {
		panic(err)
	}

	return args
}

func normalizeArg(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return t, nil
	case json.Number:
		return t, nil
	case int:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case *big.Int:
		if t == nil {
			return nil, fmt.Errorf("nil *big.Int")
		}
		return json.Number(t.String()), nil
	default:
		return nil, fmt.Errorf("unsupported argument type %T", v)
	}
}

// Equal reports whether two tuples are element-for-element identical.
func (a Args) Equal(other Args) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if a[i] != other[i] {
			return false
		}
	}

	return true
}

// UnmarshalJSON decodes the tuple preserving numeric values as json.Number.
func (a *Args) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*a = raw

	return nil
}
