// Package azauth is a client for the website authentication API exposed under
// /api/auth: exchange an email and password, or a previously issued access
// token, for a player profile, and invalidate a token.
//
// Operations:
//   - Authenticate posts {email, password} to /api/auth/authenticate.
//   - Verify posts {access_token} to /api/auth/verify.
//   - Logout posts {access_token} to /api/auth/logout and ignores the body.
//
// AuthenticateAs and VerifyAs decode into a caller supplied type instead of
// PlayerProfile. Field names map to snake_case on the wire unless a json tag
// says otherwise; fields of type codec.Color and time.Time go through the
// client's codec registry.
//
// Errors:
//   - *AuthenticationError when the server answers 422, carrying its message.
//   - ErrRequestFailed and ErrUnexpectedStatus when the exchange itself fails.
//   - ErrInvalidResponse when a success body does not decode.
//   - ErrInvalidConfig from NewClient, before any network activity.
//
// Use IsAuthenticationError to tell rejected credentials apart from
// everything else.
package azauth
