package llm

import "context"

// Completer is the interface the pipeline depends on: prompt in, raw model
// text out. The production implementation lives in the openai subpackage;
// tests substitute a stub returning canned JSON.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
