// Package api exposes the carousel pipeline over HTTP. It decodes and
// validates requests, calls the carousel service and maps the service's
// tagged errors (domain.Kind) to status codes and short user-facing
// messages. Error bodies carry the message, the error kind and the request's
// trace ID; full error details only go to the logs, redacted.
package api
