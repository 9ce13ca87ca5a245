package presenter_test

import (
	"strings"
	"testing"

	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/presenter"
	"github.com/aretw0/numerology/pkg/refdata"
	"github.com/stretchr/testify/assert"
)

func TestMarkdown_Brief(t *testing.T) {
	cat := refdata.MustLoad()
	md := presenter.Markdown(presenter.Present(cat, johnSmith, domain.ModeBrief))

	assert.Equal(t, 6, strings.Count(md, "\n## ")+1, "one heading per card")
	assert.True(t, strings.HasPrefix(md, "## Life Path Number: 5\n"))
	assert.Contains(t, md, "## Personality Number: 11 (master number)")
	assert.Contains(t, md, "**"+cat.Brief(domain.KindDestiny, 8).Keyword+"**")
	assert.NotContains(t, md, "Keywords:")
}

func TestMarkdown_Detail(t *testing.T) {
	cat := refdata.MustLoad()
	md := presenter.Markdown(presenter.Present(cat, johnSmith, domain.ModeDetail))

	assert.Contains(t, md, "> "+cat.Detail(domain.KindLifePath, 5).Advice)
	assert.Contains(t, md, "**Keywords:** "+strings.Join(cat.Keywords(5), ", "))
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Empty(t, presenter.Markdown(presenter.View{}))
}
