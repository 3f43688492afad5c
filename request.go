package azauth

import (
	"github.com/goliatone/go-azauth/codec"
)

type endpoint string

const (
	endpointAuthenticate endpoint = "authenticate"
	endpointVerify       endpoint = "verify"
	endpointLogout       endpoint = "logout"
)

type credentialsRequest struct {
	Email    string
	Password string
}

type tokenRequest struct {
	AccessToken string
}

// authErrorBody is the 422 payload. Every field is optional: a 422 is an
// authentication failure whatever the server puts in the object.
type authErrorBody struct {
	Message string `json:",omitempty"`
	Reason  string `json:",omitempty"`
	Status  string `json:",omitempty"`
}

// encodeRequest builds the JSON body for ep from its positional fields:
// email and password for authenticate, the access token otherwise.
func encodeRequest(reg *codec.Registry, ep endpoint, fields ...string) ([]byte, error) {
	var payload any

	switch ep {
	case endpointAuthenticate:
		if len(fields) != 2 {
			return nil, arityError(ep, 2, len(fields))
		}
		payload = credentialsRequest{Email: fields[0], Password: fields[1]}
	case endpointVerify, endpointLogout:
		if len(fields) != 1 {
			return nil, arityError(ep, 1, len(fields))
		}
		payload = tokenRequest{AccessToken: fields[0]}
	default:
		return nil, wrapError(ErrInvalidRequest, nil, map[string]any{
			"endpoint": string(ep),
			"reason":   "unknown endpoint",
		})
	}

	body, err := codec.Encode(reg, payload)
	if err != nil {
		return nil, wrapError(ErrInvalidRequest, err, map[string]any{"endpoint": string(ep)})
	}
	return body, nil
}

func arityError(ep endpoint, want, got int) error {
	return wrapError(ErrInvalidRequest, nil, map[string]any{
		"endpoint": string(ep),
		"expected": want,
		"fields":   got,
	})
}
