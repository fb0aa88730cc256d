package advice

import (
	"encoding/json"
	"errors"
	"fmt"
)

const generatedTextField = "generated_text"

var (
	// ErrMalformedBody means a 200 response did not decode as JSON.
	ErrMalformedBody = errors.New("malformed response body")
	// ErrUnrecognizedShape means the body decoded but carried no usable text.
	ErrUnrecognizedShape = errors.New("unrecognized response shape")
)

// Shape is the closed set of response bodies the requesters distinguish.
// Implementations: ListOfObjectsWithText, ObjectWithText, OtherShape.
type Shape interface {
	shape()
}

// ListOfObjectsWithText is a non-empty array whose first element carries generated text.
type ListOfObjectsWithText struct{ Text string }

// ObjectWithText is a single object carrying generated text.
type ObjectWithText struct{ Text string }

// OtherShape is anything else that still decoded as JSON.
type OtherShape struct{ Description string }

func (ListOfObjectsWithText) shape() {}
func (ObjectWithText) shape()        {}
func (OtherShape) shape()            {}

// ClassifyBody decodes body and sorts it into one of the known shapes.
func ClassifyBody(body []byte) (Shape, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return OtherShape{Description: "empty array"}, nil
		}
		first, ok := t[0].(map[string]any)
		if !ok {
			return OtherShape{Description: fmt.Sprintf("array of %T", t[0])}, nil
		}
		if text, ok := textField(first); ok {
			return ListOfObjectsWithText{Text: text}, nil
		}
		return OtherShape{Description: "array without " + generatedTextField}, nil
	case map[string]any:
		if text, ok := textField(t); ok {
			return ObjectWithText{Text: text}, nil
		}
		return OtherShape{Description: "object without " + generatedTextField}, nil
	default:
		return OtherShape{Description: fmt.Sprintf("%T", v)}, nil
	}
}

func textField(obj map[string]any) (string, bool) {
	raw, ok := obj[generatedTextField]
	if !ok {
		return "", false
	}
	text, ok := raw.(string)
	return text, ok
}
