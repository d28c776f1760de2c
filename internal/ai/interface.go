package ai

import (
	"context"

	"skybook/internal/modules/followup"
)

// Extractor turns a free-text flight request into the raw extraction JSON.
// conversation holds recent turns rendered as "User:/Assistant:" lines.
// The returned bytes are not validated; callers decode them.
type Extractor interface {
	ExtractBooking(ctx context.Context, message, conversation string) ([]byte, error)
}

var (
	_ Extractor         = (*GeminiProvider)(nil)
	_ followup.Embedder = (*GeminiProvider)(nil)
	_ followup.Filter   = (*GeminiProvider)(nil)
)
