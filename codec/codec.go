package codec

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeMalformedJSON   = "codec_malformed_json"
	TextCodeMissingField    = "codec_missing_field"
	TextCodeInvalidDocument = "codec_invalid_document"
	TextCodeInvalidColor    = "codec_invalid_color"
	TextCodeInvalidInstant  = "codec_invalid_instant"
)

// ErrMalformedJSON is returned when a document is not valid JSON.
var ErrMalformedJSON = errors.New("malformed JSON document", errors.CategoryBadInput).
	WithTextCode(TextCodeMalformedJSON).
	WithCode(errors.CodeBadRequest)

// ErrMissingField is returned when a required field is absent or null.
var ErrMissingField = errors.New("required field missing", errors.CategoryBadInput).
	WithTextCode(TextCodeMissingField).
	WithCode(errors.CodeBadRequest)

// ErrInvalidDocument is returned when a valid JSON document does not fit the
// destination type.
var ErrInvalidDocument = errors.New("document does not match destination", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidDocument).
	WithCode(errors.CodeBadRequest)

// ErrInvalidColor is returned by ColorCodec for values outside the wire format.
var ErrInvalidColor = errors.New("invalid color value", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidColor).
	WithCode(errors.CodeBadRequest)

// ErrInvalidInstant is returned by InstantCodec for values outside the wire format.
var ErrInvalidInstant = errors.New("invalid instant value", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidInstant).
	WithCode(errors.CodeBadRequest)

// Codec converts a single Go value type to and from its raw JSON form.
// Decode must accept everything Encode produces.
type Codec[V any] interface {
	Encode(value V) ([]byte, error)
	Decode(data []byte) (V, error)
}

// IsFormatError reports whether err was produced by this package while reading
// a document or a value.
func IsFormatError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}

	switch richErr.TextCode {
	case TextCodeMalformedJSON,
		TextCodeMissingField,
		TextCodeInvalidDocument,
		TextCodeInvalidColor,
		TextCodeInvalidInstant:
		return true
	}
	return false
}

// HasTextCode reports whether err carries the given text code.
func HasTextCode(err error, code string) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}

func formatError(base *errors.Error, err error, meta map[string]any) error {
	clone := base.Clone()
	if clone == nil {
		clone = base
	}
	if err != nil {
		clone.Source = err
		if meta == nil {
			meta = map[string]any{}
		}
		meta["error"] = err.Error()
	}
	if len(meta) > 0 {
		clone.WithMetadata(meta)
	}
	return clone
}
