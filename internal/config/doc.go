// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and CAROUSEL_-prefixed environment
// variables. It provides type-safe settings for the server, the language
// model, the image job service, batch storage and the renderer.
package config
