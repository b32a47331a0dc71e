package flows

import (
	"context"
	"strings"

	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/domain"
)

// listContent builds the browse handler for one content kind.
func (f *Flows) listContent(kind domain.ContentKind) dialog.Handler {
	return func(ctx context.Context, t *dialog.Turn) error {
		items, err := f.Content.ListByKind(ctx, kind)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			t.Reply("Nothing here yet. Check back later.")
			return nil
		}
		var b strings.Builder
		for _, item := range items {
			b.WriteString("• ")
			b.WriteString(item.Title)
			b.WriteString("\n")
			b.WriteString(item.Body)
			b.WriteString("\n\n")
		}
		t.Reply(strings.TrimRight(b.String(), "\n"))
		return nil
	}
}
