package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treinai_backend/internal/config"
)

func TestRenderWelcome(t *testing.T) {
	body, err := renderWelcome("Maria", "Carlos", "temp-123")
	require.NoError(t, err)

	assert.Contains(t, body, "Olá, Maria!")
	assert.Contains(t, body, "Carlos")
	assert.Contains(t, body, "temp-123")
}

func TestRenderWelcome_EscapesHTML(t *testing.T) {
	body, err := renderWelcome("<script>x</script>", "Carlos", "temp")
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
}

func TestRenderDeactivation(t *testing.T) {
	body, err := renderDeactivation("Maria")
	require.NoError(t, err)

	assert.Contains(t, body, "Olá, Maria.")
	assert.Contains(t, body, "desativada")
}

func TestNewProvider(t *testing.T) {
	_, ok := New(config.EmailConfig{Enabled: false}).(*NoopProvider)
	assert.True(t, ok, "disabled email config must yield the noop provider")
}
