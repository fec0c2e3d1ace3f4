package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcanaland/greetcard/internal/card"
)

// DefaultBatchSize is the number of options requested when no count is given
const DefaultBatchSize = 3

// GenerateMultipleMessages requests count messages one after another. Failed
// attempts are skipped; the returned error joins them and is nil when every
// attempt succeeded. Cancelling ctx stops the remaining attempts.
func GenerateMultipleMessages(ctx context.Context, p Provider, t card.Type, count int) ([]Message, error) {
	messages := make([]Message, 0, max(count, 0))
	var errs []error

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		m, err := p.GenerateCardMessage(ctx, t, "")
		if err != nil {
			errs = append(errs, fmt.Errorf("message %d: %w", i+1, err))
			if errors.Is(err, ErrUnconfigured) {
				break
			}
			continue
		}
		messages = append(messages, m)
	}

	return messages, errors.Join(errs...)
}
