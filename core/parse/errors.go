package parse

import "errors"

// ErrNonJSON is returned by [Value] when content cannot be decoded as a
// JSON object even after the tolerant repair pass. All decode failures
// wrap this sentinel so callers can classify the input with [errors.Is]
// without inspecting message text.
//
// Example:
//
//	if errors.Is(err, parse.ErrNonJSON) {
//	    // the text holds no JSON object
//	}
var ErrNonJSON = errors.New("analyzer: content is not a JSON object")
