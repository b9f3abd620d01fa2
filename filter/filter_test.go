package filter

import (
	"errors"
	"testing"

	"wml-taglinks/config"
	"wml-taglinks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLinks() []models.Link {
	return []models.Link{
		{Text: "A", Href: "/A", HasHref: true, Row: 1},
		{Text: "NoHref", HasHref: false, Row: 2},
		{Text: "Empty", Href: "", HasHref: true, Row: 3},
	}
}

func TestApply_Skip(t *testing.T) {
	cfg := config.GetDefaultConfig()

	kept, skipped, err := NewFilter(cfg).Apply(testLinks())
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []models.Link{
		{Text: "A", Href: "/A", HasHref: true, Row: 1},
		{Text: "Empty", Href: "", HasHref: true, Row: 3},
	}, kept)
}

func TestApply_Fail(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.MissingHref = config.MissingHrefFail

	kept, _, err := NewFilter(cfg).Apply(testLinks())
	require.Error(t, err)
	assert.Nil(t, kept)

	var missing *MissingHrefError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, 2, missing.Row)
	assert.Equal(t, "NoHref", missing.Text)
	assert.Contains(t, err.Error(), "data row 2")
}

func TestApply_NothingMissing(t *testing.T) {
	for _, policy := range []string{config.MissingHrefSkip, config.MissingHrefFail} {
		t.Run(policy, func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			cfg.MissingHref = policy
			links := []models.Link{{Text: "A", Href: "/A", HasHref: true, Row: 1}}

			kept, skipped, err := NewFilter(cfg).Apply(links)
			require.NoError(t, err)
			assert.Zero(t, skipped)
			assert.Equal(t, links, kept)
		})
	}
}
