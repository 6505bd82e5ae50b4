// Package api holds the JSON contract shared by the HTTP server and the
// dashboard client: request/response bodies, enumerations, and the menu
// settings document with its fixed set of sections.
package api
