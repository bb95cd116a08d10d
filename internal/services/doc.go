// Package services implements the authenticated client for the management API.
//
// # Client
//
// [Client] sends GET, DELETE, and multipart POST requests to application-relative paths such as
// /api/topics.json. Every request carries an authorization header produced by a [CredentialSource].
//
// # Credentials
//
//   - [BasicCredential] : username/password from config or KMX_USERNAME / KMX_PASSWORD
//   - [TokenCredential] : any [oauth2.TokenSource]; [StaticTokenCredential] wraps a fixed token
//
// When no credential is available the client redirects to the login page first. The request is then
// still sent without an authorization header unless RequireCredential is set, in which case it fails
// with [shared.ErrNotAuthenticated].
//
// # Login Redirects
//
// A [Navigator] holds the client's current location. [BrowserNavigator] opens the login page in the
// system browser, and never re-opens a page the client is already on.
//
// # Error Handling
//
//   - [shared.ErrUnauthorized] : the server answered 401
//   - [shared.ErrAPIRequest] : any other status outside 200-399 (the body is logged)
//   - [shared.ErrDecode] : a success body that is not valid JSON
package services
