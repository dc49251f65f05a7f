// Package generation turns a business theme into a carousel script by talking
// to a chat-completion language model through the LLM port.
//
// The Generator analyzes the market, optionally analyzes a reference image,
// synthesizes a CarouselStructure as JSON and regenerates single slides. It
// owns the post-processing that makes structures safe to render: slides are
// renumbered 1..N and the code word is forced into the closing slide and the
// CTA regardless of what the model produced. Concrete LLM adapters (Gemini)
// live under internal/platform.
package generation
