// Package presenter turns a ResultSet into display cards for one DisplayMode.
//
// Present is pure: the same catalog, result and mode always give the same
// View, so surfaces can re-render a cached result without deriving it again.
package presenter

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/refdata"
)

// ErrNoSuchNumber is returned by Describe for a number the kind never takes.
var ErrNoSuchNumber = errors.New("number not in domain")

// Card is one number together with its explanation.
type Card struct {
	Kind     domain.NumberKind `json:"kind"`
	Title    string            `json:"title"`
	Subtitle string            `json:"subtitle"`
	Meaning  string            `json:"meaning"`
	Number   int               `json:"number"`
	Master   bool              `json:"master,omitempty"`

	// Brief mode.
	Keyword string `json:"keyword,omitempty"`

	// Both modes. Short in brief mode, long in detail mode.
	Description string `json:"description"`

	// Detail mode.
	Advice   string   `json:"advice,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// View is everything a result sink needs to display one calculation.
type View struct {
	Mode   domain.DisplayMode `json:"mode"`
	Result domain.ResultSet   `json:"result"`
	Cards  []Card             `json:"cards"`
}

// Present builds one card per kind, in domain.Kinds order.
func Present(c *refdata.Catalog, r domain.ResultSet, mode domain.DisplayMode) View {
	kinds := domain.Kinds()
	v := View{
		Mode:   mode,
		Result: r,
		Cards:  make([]Card, 0, len(kinds)),
	}
	for _, k := range kinds {
		v.Cards = append(v.Cards, card(c, k, r.Get(k), mode))
	}
	return v
}

// Describe builds the card for a single number, outside of any result set.
// n must belong to k's number domain.
func Describe(c *refdata.Catalog, k domain.NumberKind, n int, mode domain.DisplayMode) (Card, error) {
	if !slices.Contains(k.NumberDomain(), n) {
		return Card{}, fmt.Errorf("%w: %s cannot be %d", ErrNoSuchNumber, k, n)
	}
	return card(c, k, n, mode), nil
}

func card(c *refdata.Catalog, k domain.NumberKind, n int, mode domain.DisplayMode) Card {
	entry := c.Kind(k)
	out := Card{
		Kind:     k,
		Title:    entry.Title,
		Subtitle: entry.Subtitle,
		Meaning:  entry.Meaning,
		Number:   n,
		Master:   domain.IsMasterNumber(n),
	}

	if mode == domain.ModeDetail {
		d := c.Detail(k, n)
		out.Description = d.Description
		out.Advice = d.Advice
		out.Keywords = c.Keywords(n)
		return out
	}

	b := c.Brief(k, n)
	out.Keyword = b.Keyword
	out.Description = b.Description
	return out
}

// Card returns the card for kind k, or false if the view has none.
func (v View) Card(k domain.NumberKind) (Card, bool) {
	for _, c := range v.Cards {
		if c.Kind == k {
			return c, true
		}
	}
	return Card{}, false
}
