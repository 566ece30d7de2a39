package templates

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	subject, text, html, err := Render(Welcome, map[string]any{"Name": "Ana <admin>"})
	require.NoError(t, err)

	require.Equal(t, "Welcome to DevConnector, Ana <admin>", subject)
	require.Contains(t, text, "Hi Ana <admin>,")
	require.Contains(t, html, "Hi Ana &lt;admin&gt;,")
}

func TestRender_DefaultsWhenDataMissing(t *testing.T) {
	subject, _, _, err := Render(Welcome, nil)
	require.NoError(t, err)
	require.Equal(t, "Welcome to DevConnector, developer", subject)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	require.Error(t, err)
}
