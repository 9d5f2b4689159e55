package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const LinkField = "Link"

// Record is a JSON object that remembers the order of its keys.
// Values are kept as compact raw JSON with strings unescaped, so non-ASCII
// text is written back literally.
type Record struct {
	keys   []string
	values map[string]json.RawMessage
}

type Records []*Record

func NewRecord() *Record {
	return &Record{values: map[string]json.RawMessage{}}
}

func (record *Record) Keys() []string {
	return record.keys
}

func (record *Record) Has(key string) bool {
	_, exists := record.values[key]
	return exists
}

func (record *Record) Get(key string) (json.RawMessage, bool) {
	value, exists := record.values[key]
	return value, exists
}

// Set stores a raw value. A new key is appended, an existing one keeps its place.
func (record *Record) Set(key string, value json.RawMessage) {
	if record.values == nil {
		record.values = map[string]json.RawMessage{}
	}
	if _, exists := record.values[key]; !exists {
		record.keys = append(record.keys, key)
	}
	record.values[key] = value
}

func (record *Record) SetString(key string, value string) error {
	raw, err := encodeString(value)
	if err != nil {
		return err
	}
	record.Set(key, raw)
	return nil
}

func (record *Record) GetString(key string) (string, error) {
	raw, exists := record.values[key]
	if !exists {
		return "", fmt.Errorf("%w: key %s doesn't exists in record", ErrShape, key)
	}
	var value string
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", fmt.Errorf("%w: key %s is null", ErrShape, key)
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%w: key %s is not a string", ErrShape, key)
	}
	return value, nil
}

// Validate implements validation.Validatable.
func (record *Record) Validate() error {
	raw, _ := record.Get(LinkField)
	return validation.Errors{
		LinkField: validation.Validate(raw, validation.Required, validation.By(isJSONString)),
	}.Filter()
}

func isJSONString(value interface{}) error {
	raw, _ := value.(json.RawMessage)
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return validation.NewError("validation_is_string", "must be a string")
	}
	return nil
}

func (record *Record) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: record is not an object", ErrShape)
	}

	decoder.UseNumber()
	record.keys = nil
	record.values = map[string]json.RawMessage{}
	if err = record.decodeMembers(decoder); err != nil {
		return err
	}
	if _, err = decoder.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after record", ErrParse)
	}
	return nil
}

// decodeMembers reads key/value pairs up to and including the closing brace.
func (record *Record) decodeMembers(decoder *json.Decoder) error {
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected token %v", ErrParse, token)
		}
		value, err := decodeValue(decoder)
		if err != nil {
			return err
		}
		record.Set(key, value)
	}
	_, err := decoder.Token()
	return err
}

// decodeValue re-encodes the next value compactly. Strings are decoded and
// written back unescaped, numbers keep their literal text and nested objects
// keep their key order.
func decodeValue(decoder *json.Decoder) (json.RawMessage, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	switch value := token.(type) {
	case json.Delim:
		if value == '{' {
			nested := NewRecord()
			if err = nested.decodeMembers(decoder); err != nil {
				return nil, err
			}
			return nested.MarshalJSON()
		}
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i := 0; decoder.More(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			item, err := decodeValue(decoder)
			if err != nil {
				return nil, err
			}
			buf.Write(item)
		}
		if _, err = decoder.Token(); err != nil {
			return nil, err
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case string:
		return encodeString(value)
	case json.Number:
		return json.RawMessage(value), nil
	case bool:
		return json.RawMessage(strconv.FormatBool(value)), nil
	case nil:
		return json.RawMessage("null"), nil
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrParse, token)
}

func (record *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range record.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		rawKey, err := encodeString(key)
		if err != nil {
			return nil, err
		}
		buf.Write(rawKey)
		buf.WriteByte(':')
		buf.Write(record.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseRecords decodes a JSON array of objects, preserving element order.
func ParseRecords(data []byte) (Records, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: document is not valid utf-8", ErrParse)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: document is not valid json", ErrParse)
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("%w: document is not an array", ErrShape)
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, fmt.Errorf("%w: document is not an array", ErrShape)
	}

	records := make(Records, 0, len(elements))
	for i, element := range elements {
		record := NewRecord()
		if err := record.UnmarshalJSON(element); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// encodeString marshals a string without escaping <, > and &.
func encodeString(value string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
