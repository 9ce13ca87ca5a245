package presenter

import (
	"fmt"
	"strings"

	"github.com/aretw0/numerology/pkg/domain"
)

// Markdown formats a view as a Markdown document, one section per card.
func Markdown(v View) string {
	var b strings.Builder
	for i, c := range v.Cards {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s: %d", c.Title, c.Number)
		if c.Master {
			b.WriteString(" (master number)")
		}
		b.WriteString("\n\n")
		if c.Subtitle != "" {
			fmt.Fprintf(&b, "*%s.* %s\n\n", c.Subtitle, c.Meaning)
		} else {
			fmt.Fprintf(&b, "%s\n\n", c.Meaning)
		}

		if v.Mode == domain.ModeDetail {
			fmt.Fprintf(&b, "%s\n\n", c.Description)
			fmt.Fprintf(&b, "> %s\n", c.Advice)
			if len(c.Keywords) > 0 {
				fmt.Fprintf(&b, "\n**Keywords:** %s\n", strings.Join(c.Keywords, ", "))
			}
			continue
		}
		fmt.Fprintf(&b, "**%s**: %s\n", c.Keyword, c.Description)
	}
	return b.String()
}
