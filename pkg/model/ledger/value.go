package ledger

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/iotaledger/hive.go/marshalutil"
)

var (
	ErrMalformedValue = errors.New("malformed ledger value")
	ErrTypeMismatch   = errors.New("ledger value type mismatch")
)

// ValueType is the type tag of a ledger value.
type ValueType byte

const (
	ValueTypeInteger ValueType = 0
	ValueTypeString  ValueType = 1
)

const (
	// type byte + int64
	integerValueLength = 1 + 8
	// type byte + uint32 length prefix
	stringValueHeaderLength = 1 + 4
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeInteger:
		return "integer"
	case ValueTypeString:
		return "string"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// ValueTypeFromString parses the name of a value type.
func ValueTypeFromString(s string) (ValueType, error) {
	switch s {
	case "integer":
		return ValueTypeInteger, nil
	case "string":
		return ValueTypeString, nil
	default:
		return 0, errors.Wrapf(ErrMalformedValue, "unknown value type: %s", s)
	}
}

// Value is a typed ledger value, either an integer or a string.
type Value struct {
	Type    ValueType
	Integer int64
	String  string
}

// NewIntegerValue creates an integer value.
func NewIntegerValue(value int64) *Value {
	return &Value{Type: ValueTypeInteger, Integer: value}
}

// NewStringValue creates a string value.
func NewStringValue(value string) *Value {
	return &Value{Type: ValueTypeString, String: value}
}

// Equal tells whether both values have the same type and content.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.Type != other.Type {
		return false
	}
	if v.Type == ValueTypeInteger {
		return v.Integer == other.Integer
	}
	return v.String == other.String
}

// Text returns the value in its textual form.
func (v *Value) Text() string {
	if v.Type == ValueTypeInteger {
		return strconv.FormatInt(v.Integer, 10)
	}
	return v.String
}

// Bytes serializes the value for the kvstore.
func (v *Value) Bytes() []byte {
	switch v.Type {
	case ValueTypeInteger:
		m := marshalutil.New(integerValueLength)
		m.WriteByte(byte(ValueTypeInteger)) // 1 byte
		m.WriteInt64(v.Integer)             // 8 bytes
		return m.Bytes()
	default:
		m := marshalutil.New(stringValueHeaderLength + len(v.String))
		m.WriteByte(byte(ValueTypeString))   // 1 byte
		m.WriteUint32(uint32(len(v.String))) // 4 bytes
		m.WriteBytes([]byte(v.String))       // n bytes
		return m.Bytes()
	}
}

// ValueFromBytes parses a serialized value.
func ValueFromBytes(data []byte) (*Value, error) {
	if len(data) < 1 {
		return nil, errors.Wrap(ErrMalformedValue, "empty value")
	}

	m := marshalutil.New(data)
	typeByte, err := m.ReadByte()
	if err != nil {
		return nil, errors.Wrap(ErrMalformedValue, err.Error())
	}

	switch ValueType(typeByte) {
	case ValueTypeInteger:
		if len(data) != integerValueLength {
			return nil, errors.Wrapf(ErrMalformedValue, "invalid integer value length: %d", len(data))
		}
		value, err := m.ReadInt64()
		if err != nil {
			return nil, errors.Wrap(ErrMalformedValue, err.Error())
		}
		return NewIntegerValue(value), nil

	case ValueTypeString:
		if len(data) < stringValueHeaderLength {
			return nil, errors.Wrapf(ErrMalformedValue, "invalid string value length: %d", len(data))
		}
		length, err := m.ReadUint32()
		if err != nil {
			return nil, errors.Wrap(ErrMalformedValue, err.Error())
		}
		if len(data) != stringValueHeaderLength+int(length) {
			return nil, errors.Wrapf(ErrMalformedValue, "string length %d does not match value length %d", length, len(data))
		}
		value, err := m.ReadBytes(int(length))
		if err != nil {
			return nil, errors.Wrap(ErrMalformedValue, err.Error())
		}
		return NewStringValue(string(value)), nil

	default:
		return nil, errors.Wrapf(ErrMalformedValue, "unknown value type: %d", typeByte)
	}
}

// Entry is a single key/value pair of a ledger.
type Entry struct {
	Key   string
	Value *Value
}

// NewIntegerEntry creates an entry holding an integer value.
func NewIntegerEntry(key string, value int64) *Entry {
	return &Entry{Key: key, Value: NewIntegerValue(value)}
}

// NewStringEntry creates an entry holding a string value.
func NewStringEntry(key string, value string) *Entry {
	return &Entry{Key: key, Value: NewStringValue(value)}
}
