package parse

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/edslclee/legacy-csharp-analyzer/core/extract"
	"github.com/kaptinlin/jsonrepair"
)

// Value decodes content into a JSON object, repairing the text when the
// strict decode fails. The repaired text must still decode into an
// object: a payload the repair pass can only salvage as a bare string,
// number, or array is rejected, as is a JSON null. Errors wrap
// [ErrNonJSON].
//
// Value does not search content for an embedded object; callers holding
// noisy surrounding text should slice it first (see the extract package)
// or use [As].
func Value(content string) (map[string]any, error) {
	value, strictErr := decodeObject(content)
	if strictErr == nil {
		return value, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return nil, fmt.Errorf("%w: %v (repair also failed: %v)", ErrNonJSON, strictErr, repairErr)
	}

	value, err := decodeObject(repaired)
	if err != nil {
		return nil, fmt.Errorf("%w: %v (after repair: %v)", ErrNonJSON, strictErr, err)
	}

	return value, nil
}

// As decodes content into a value of type T, tolerating the noise that
// surrounds LLM output. Candidates are tried in order:
//  1. strict decode of the content as-is;
//  2. strict decode of the brace-delimited slice found by [extract.Extract];
//  3. repair of that slice followed by a final strict decode.
//
// Primitive targets need no special casing: prose that is not valid JSON
// is quoted by the repair pass, so As[string] returns free text verbatim
// while numeric and boolean literals decode directly.
//
// Example usage:
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	// Clean, noisy, or broken input all decode the same way.
//	person, err := parse.As[Person](`{"name":"John","age":30}`)
//	person, err = parse.As[Person]("Here you go:\n{name: 'John', age: 30}")
func As[T any](content string) (T, error) {
	if out, err := decodeStrict[T](content); err == nil {
		return out, nil
	}

	candidate := extract.Extract(content)
	out, strictErr := decodeStrict[T](candidate)
	if strictErr == nil {
		return out, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(candidate)
	if repairErr != nil {
		return out, fmt.Errorf("failed to decode content as %T and failed to repair JSON: decode error: %w, repair error: %v", out, strictErr, repairErr)
	}

	out, err := decodeStrict[T](repaired)
	if err != nil {
		return out, fmt.Errorf("failed to decode repaired JSON as %T: %w", out, err)
	}

	return out, nil
}

// decodeObject strictly decodes content into a JSON object. A JSON null
// decodes into a nil map and is rejected like any other non-object.
func decodeObject(content string) (map[string]any, error) {
	var value map[string]any
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, errors.New("decoded to json null")
	}

	return value, nil
}

// decodeStrict decodes into a fresh T so a failed attempt can never leak
// partially-filled fields into the next one.
func decodeStrict[T any](content string) (T, error) {
	var out T
	err := json.Unmarshal([]byte(content), &out)

	return out, err
}
