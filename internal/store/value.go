package store

import (
	"fmt"
	"strconv"
)

// Kind identifies the type carried by a Value.
type Kind string

const (
	// KindUint is an unsigned 64-bit integer value.
	KindUint Kind = "uint"
	// KindBool is a boolean value.
	KindBool Kind = "bool"
)

// Value is a typed scalar stored under a key path. Only the field matching
// Kind is meaningful.
type Value struct {
	Kind Kind
	Uint uint64
	Bool bool
}

// UintValue returns a Value carrying an unsigned integer.
func UintValue(v uint64) Value {
	return Value{Kind: KindUint, Uint: v}
}

// BoolValue returns a Value carrying a boolean.
func BoolValue(v bool) Value {
	return Value{Kind: KindBool, Bool: v}
}

// encode serializes the value payload for storage.
func (v Value) encode() (string, error) {
	switch v.Kind {
	case KindUint:
		return strconv.FormatUint(v.Uint, 10), nil
	case KindBool:
		return strconv.FormatBool(v.Bool), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, v.Kind)
	}
}

// decodeValue parses a stored payload back into a Value.
func decodeValue(kind Kind, raw string) (Value, error) {
	switch kind {
	case KindUint:
		u, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("failed to decode uint value %q: %w", raw, err)
		}
		return UintValue(u), nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("failed to decode bool value %q: %w", raw, err)
		}
		return BoolValue(b), nil
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
