// Package gemini implements the generation.LLM port on top of Google's Gemini
// API using the google.golang.org/genai SDK. It maps completion tiers to
// configured model names, turns role-tagged messages with inline images into
// genai contents, and classifies SDK failures into domain error kinds.
package gemini
