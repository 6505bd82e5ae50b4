// Package client is the dashboard's HTTP request wrapper around the platform
// API. Every request carries the current bearer token, JSON bodies are
// encoded and decoded here, and non-2xx responses come back as *APIError so
// callers can branch on the status code instead of parsing strings.
//
// Any 401 response also fires the registered unauthorized hook. The session
// service uses it to drop the persisted token and cached state.
package client
