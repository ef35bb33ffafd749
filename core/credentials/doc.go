// Package credentials obtains bearer tokens for the upstream providers.
//
// Tokens are explicit values with an expiry, fetched with the OAuth2 client-credentials grant
// and held by a Source that each fetcher receives as a Provider. There is no process-wide
// token state: every call asks its Provider, which returns the cached token until it is
// about to expire and refreshes it otherwise.
//
// Two credential styles are supported, matching the providers the pipeline talks to:
//   - params: client_id/client_secret in the form body (pricing provider)
//   - basic: HTTP Basic authentication (media provider)
package credentials
