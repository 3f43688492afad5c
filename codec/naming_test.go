package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ID", "id"},
		{"UUID", "uuid"},
		{"Username", "username"},
		{"AccessToken", "access_token"},
		{"EmailVerified", "email_verified"},
		{"CreatedAt", "created_at"},
		{"AvatarURL", "avatar_url"},
		{"HTTPStatus", "http_status"},
		{"Sha256Sum", "sha256_sum"},
		{"already_snake", "already_snake"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SnakeCase(tt.input))
		})
	}
}

func TestWireName(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		tag       string
		wire      string
		omitempty bool
		skip      bool
	}{
		{name: "untagged", field: "AccessToken", wire: "access_token"},
		{name: "explicit name", field: "AccessToken", tag: "token", wire: "token"},
		{name: "omitempty only", field: "CreatedAt", tag: ",omitempty", wire: "created_at", omitempty: true},
		{name: "name and options", field: "Money", tag: "balance,string,omitempty", wire: "balance", omitempty: true},
		{name: "skipped", field: "Secret", tag: "-", skip: true},
		{name: "dash name", field: "Dash", tag: "-,", wire: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire, omitempty, skip := wireName(tt.field, tt.tag, SnakeCase)
			assert.Equal(t, tt.wire, wire)
			assert.Equal(t, tt.omitempty, omitempty)
			assert.Equal(t, tt.skip, skip)
		})
	}
}
