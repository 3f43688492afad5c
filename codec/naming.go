package codec

import (
	"strings"
	"unicode"
)

// NamingStrategy maps a Go field name to its wire name.
type NamingStrategy func(field string) string

// SnakeCase maps Go field names to lower_snake_case wire names. Runs of
// capitals are kept together: AccessToken -> access_token, UUID -> uuid,
// AvatarURL -> avatar_url, HTTPStatus -> http_status.
func SnakeCase(field string) string {
	runes := []rune(field)
	var b strings.Builder
	b.Grow(len(field) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Identity keeps Go field names as they are.
func Identity(field string) string {
	return field
}

// wireName resolves the JSON name for a struct field the same way the
// registry extension does: an explicit tag name wins, otherwise the naming
// strategy applies. skip is true for fields tagged "-".
func wireName(field, tag string, naming NamingStrategy) (name string, omitempty bool, skip bool) {
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == "omitempty" {
			omitempty = true
		}
	}

	if name == "" {
		name = naming(field)
	}
	return name, omitempty, false
}
