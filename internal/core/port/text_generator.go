package port

import "context"

// TextGenerator produces free text for a prompt using an external model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
