// Package api implements the HTTP handlers for the training data
// generation endpoints, translating between the JSON wire format and the
// generation pipeline and mapping typed pipeline errors to HTTP statuses.
package api
