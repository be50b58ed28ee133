// Package jwt is helpers for working with JSON Web Tokens (JWT).
//
// It includes:
//   - A typed Claims wrapper (registered claims + strongly-typed payload).
//   - A symmetric HS512 implementation minting two kinds of tokens: 24-hour
//     session tokens and short-lived magic-link tokens, distinguished by a
//     purpose claim.
package jwt
