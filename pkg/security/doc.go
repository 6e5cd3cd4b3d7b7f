// Package security groups the adapter's security components.
//
// The auth subpackage authenticates requests to the lifecycle admin endpoint
// with configured bearer tokens.
package security
