package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Okyu59/astro-seek/internal/adapters/markdown"
)

func TestRender(t *testing.T) {
	out, err := markdown.New().Render("Your **Venus in Libra** loves balance.\n\n- harmony\n- partnership")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>Venus in Libra</strong>")
	assert.Contains(t, out, "<li>harmony</li>")
}

func TestRender_DropsRawHTML(t *testing.T) {
	out, err := markdown.New().Render("hello <script>alert(1)</script>")
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
}

func TestRender_Empty(t *testing.T) {
	out, err := markdown.New().Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
