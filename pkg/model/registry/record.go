package registry

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// FieldSeparator separates the header and the fields of a packed record.
	FieldSeparator = "__"
	// ChoiceSeparator separates the named choices of a proposal.
	ChoiceSeparator = ":"
)

// FieldType is the type tag of a packed record field.
type FieldType byte

const (
	FieldTypeString  FieldType = 's'
	FieldTypeInteger FieldType = 'd'
	FieldTypeBoolean FieldType = 'b'
)

var (
	ErrMalformedProposalRecord = errors.New("malformed proposal record")
)

// Record is a packed string record of the form
// "<header>__<field>__<field>..." where the header is a list of
// "%s", "%d" or "%b" tags, one per field.
type Record struct {
	Header string
	Types  []FieldType
	Fields []string
}

func parseHeader(header string) ([]FieldType, error) {
	if len(header) == 0 || len(header)%2 != 0 {
		return nil, errors.Wrapf(ErrMalformedProposalRecord, "invalid header %q", header)
	}

	types := make([]FieldType, 0, len(header)/2)
	for i := 0; i < len(header); i += 2 {
		if header[i] != '%' {
			return nil, errors.Wrapf(ErrMalformedProposalRecord, "invalid header %q", header)
		}
		switch t := FieldType(header[i+1]); t {
		case FieldTypeString, FieldTypeInteger, FieldTypeBoolean:
			types = append(types, t)
		default:
			return nil, errors.Wrapf(ErrMalformedProposalRecord, "unknown field type %q in header %q", header[i+1], header)
		}
	}
	return types, nil
}

// ParseRecord splits a packed record and checks every field against its type tag.
func ParseRecord(s string) (*Record, error) {
	parts := strings.Split(s, FieldSeparator)

	types, err := parseHeader(parts[0])
	if err != nil {
		return nil, err
	}

	fields := parts[1:]
	if len(fields) != len(types) {
		return nil, errors.Wrapf(ErrMalformedProposalRecord, "header %q declares %d fields, found %d", parts[0], len(types), len(fields))
	}

	for i, field := range fields {
		switch types[i] {
		case FieldTypeInteger:
			if _, err := strconv.ParseInt(field, 10, 64); err != nil {
				return nil, errors.Wrapf(ErrMalformedProposalRecord, "field %d: invalid integer %q", i, field)
			}
		case FieldTypeBoolean:
			if field != "true" && field != "false" {
				return nil, errors.Wrapf(ErrMalformedProposalRecord, "field %d: invalid boolean %q", i, field)
			}
		}
	}

	return &Record{
		Header: parts[0],
		Types:  types,
		Fields: fields,
	}, nil
}

// ParseRecordWithHeader parses a record that must carry exactly the given header.
func ParseRecordWithHeader(s string, header string) (*Record, error) {
	record, err := ParseRecord(s)
	if err != nil {
		return nil, err
	}
	if record.Header != header {
		return nil, errors.Wrapf(ErrMalformedProposalRecord, "unexpected header %q, expected %q", record.Header, header)
	}
	return record, nil
}

func (r *Record) checkField(index int, t FieldType) error {
	if index < 0 || index >= len(r.Fields) {
		return errors.Wrapf(ErrMalformedProposalRecord, "field %d out of range", index)
	}
	if r.Types[index] != t {
		return errors.Wrapf(ErrMalformedProposalRecord, "field %d is %%%c, not %%%c", index, r.Types[index], t)
	}
	return nil
}

// String returns the string field at index.
func (r *Record) String(index int) (string, error) {
	if err := r.checkField(index, FieldTypeString); err != nil {
		return "", err
	}
	return r.Fields[index], nil
}

// Integer returns the integer field at index.
func (r *Record) Integer(index int) (int64, error) {
	if err := r.checkField(index, FieldTypeInteger); err != nil {
		return 0, err
	}
	// validated by ParseRecord
	value, _ := strconv.ParseInt(r.Fields[index], 10, 64)
	return value, nil
}

// Boolean returns the boolean field at index.
func (r *Record) Boolean(index int) (bool, error) {
	if err := r.checkField(index, FieldTypeBoolean); err != nil {
		return false, err
	}
	return r.Fields[index] == "true", nil
}

// FormatRecord packs the given fields behind the header.
func FormatRecord(header string, fields ...string) string {
	return strings.Join(append([]string{header}, fields...), FieldSeparator)
}
