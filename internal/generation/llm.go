package generation

import "context"

// Tier selects a model class. Adapters map tiers to concrete model names.
type Tier int

const (
	// TierFast is the cheaper model used for free-text analysis and rewrites.
	TierFast Tier = iota
	// TierSmart is the stronger model used for multimodal and JSON structure work.
	TierSmart
)

// String implements fmt.Stringer.
func (t Tier) String() string {
	if t == TierSmart {
		return "smart"
	}
	return "fast"
}

// Image is an inline image attachment.
type Image struct {
	Data     []byte
	MIMEType string
}

// Message is one user turn: text plus optional image attachments.
type Message struct {
	Text   string
	Images []Image
}

// CompletionRequest is a single chat-completion call.
type CompletionRequest struct {
	Tier        Tier
	System      string
	Messages    []Message
	MaxTokens   int32
	Temperature float32
	// JSON asks the model to answer with a single JSON object.
	JSON bool
}

// LLM is the chat-completion port used by the Generator.
type LLM interface {
	// Complete sends one request and returns the first candidate's text.
	// Implementations return domain-tagged errors where they can classify
	// the failure.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// LLMFunc adapts a function to the LLM interface.
type LLMFunc func(ctx context.Context, req CompletionRequest) (string, error)

// Complete implements LLM.
func (f LLMFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}
