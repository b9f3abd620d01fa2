package filter

import (
	"fmt"
	"log/slog"

	"wml-taglinks/config"
	"wml-taglinks/models"
)

// MissingHrefError reports an anchor without an href under the fail policy
type MissingHrefError struct {
	Row  int
	Text string
}

func (e *MissingHrefError) Error() string {
	return fmt.Sprintf("anchor %q in data row %d has no href attribute", e.Text, e.Row)
}

// Filter applies the missing href policy to parsed links
type Filter struct {
	policy string
}

// NewFilter creates a new Filter instance
func NewFilter(cfg *config.Config) *Filter {
	return &Filter{
		policy: cfg.MissingHref,
	}
}

// Apply returns the links to be written and the number dropped.
// Under the fail policy the first anchor without an href aborts the run.
func (f *Filter) Apply(links []models.Link) ([]models.Link, int, error) {
	kept := make([]models.Link, 0, len(links))
	skipped := 0

	for _, link := range links {
		if link.HasHref {
			kept = append(kept, link)
			continue
		}

		if f.policy == config.MissingHrefFail {
			return nil, skipped, &MissingHrefError{Row: link.Row, Text: link.Text}
		}

		slog.Warn("skipping anchor without href", "row", link.Row, "text", link.Text)
		skipped++
	}

	return kept, skipped, nil
}
