package datasource

import (
	"encoding/json"
	"errors"
)

// DecodeLenient decodes payload into v. A field whose JSON type does not match
// is left unset while every other field still decodes; the caller's defaults
// cover the gap. It reports false only when nothing usable could be decoded.
func DecodeLenient(payload RawPayload, v any) bool {
	err := json.Unmarshal(payload, v)
	if err == nil {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}
