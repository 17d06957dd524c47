package jsonvalue

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"

	"github.com/grovetools/jsonview/errors"
)

// Parse decodes a single JSON document. Object member order and duplicate
// keys are kept as they appear in the text.
//
// The text is validated strictly first so that trailing data, multiple roots
// and other malformed input are reported with a byte offset; the tree itself
// is then built by walking the raw bytes.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.EmptyInput()
	}

	if !json.Valid(data) {
		return nil, syntaxError(data)
	}

	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.ParseFailed(err, -1)
	}
	return fromRaw(raw, dataType)
}

// ParseString is Parse for string input.
func ParseString(text string) (Value, error) {
	return Parse([]byte(text))
}

func syntaxError(data []byte) error {
	var scratch interface{}
	err := json.Unmarshal(data, &scratch)
	if err == nil {
		return errors.ParseFailed(fmt.Errorf("malformed JSON"), -1)
	}

	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.ParseFailed(err, syntaxErr.Offset)
	}
	return errors.ParseFailed(err, -1)
}

func fromRaw(raw []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return Null{}, nil

	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return nil, errors.ParseFailed(err, -1)
		}
		return Bool(b), nil

	case jsonparser.Number:
		if f, err := jsonparser.ParseFloat(raw); err == nil {
			return Number(f), nil
		}
		// jsonparser drops the value on overflow; JSON.parse gives ±Infinity.
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil && !stderrors.Is(err, strconv.ErrRange) {
			return nil, errors.ParseFailed(err, -1)
		}
		return Number(f), nil

	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return nil, errors.ParseFailed(err, -1)
		}
		return String(s), nil

	case jsonparser.Object:
		obj := &Object{Members: []Member{}}
		err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, vt jsonparser.ValueType, _ int) error {
			child, err := fromRaw(value, vt)
			if err != nil {
				return err
			}
			// key may alias a scratch buffer inside jsonparser
			obj.Members = append(obj.Members, Member{Key: string(key), Value: child})
			return nil
		})
		if err != nil {
			return nil, asParseError(err)
		}
		return obj, nil

	case jsonparser.Array:
		arr := &Array{Elements: []Value{}}
		var walkErr error
		_, err := jsonparser.ArrayEach(raw, func(value []byte, vt jsonparser.ValueType, _ int, err error) {
			if walkErr != nil {
				return
			}
			if err != nil {
				walkErr = err
				return
			}
			child, err := fromRaw(value, vt)
			if err != nil {
				walkErr = err
				return
			}
			arr.Elements = append(arr.Elements, child)
		})
		if walkErr != nil {
			return nil, asParseError(walkErr)
		}
		if err != nil {
			return nil, asParseError(err)
		}
		return arr, nil
	}

	return nil, errors.ParseFailed(fmt.Errorf("unexpected value type %s", dataType), -1)
}

func asParseError(err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.ParseFailed(err, -1)
}
