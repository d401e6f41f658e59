package llm

import "context"

// Kind tags the outcome of an LM call. Callers never see a raw transport
// error across this boundary — only the tri-state below.
type Kind int

const (
	// KindText means the call returned a non-empty text segment.
	KindText Kind = iota
	// KindEmpty means the call succeeded but carried no usable content.
	KindEmpty
	// KindFailure covers network errors, timeouts and transport faults.
	// Timeouts and transient errors are deliberately indistinguishable:
	// the pipeline reacts to both the same way (fallback, never retry).
	KindFailure
)

// Result is the tagged outcome of one LM call.
type Result struct {
	Kind Kind
	Text string
	Err  error
}

func TextResult(text string) Result { return Result{Kind: KindText, Text: text} }
func EmptyResult() Result           { return Result{Kind: KindEmpty} }
func FailureResult(err error) Result {
	return Result{Kind: KindFailure, Err: err}
}

// OK reports whether the call produced usable text.
func (r Result) OK() bool { return r.Kind == KindText }

// Client issues a single staged request to the external language model.
// One call is one outbound request: no internal retries, retry policy
// belongs to the caller (which in this system chooses fallback, not retry).
type Client interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) Result
}
