package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderApplicationApprovedEmail(t *testing.T) {
	got := RenderApplicationApprovedEmail("Ana", "Mutirão <praia>", "Chegue às 8h", "https://conectaong.org/")

	assert.Contains(t, got, "Ana")
	assert.Contains(t, got, "Mutirão &lt;praia&gt;")
	assert.Contains(t, got, "Chegue às 8h")
	assert.Contains(t, got, `href="https://conectaong.org/minhas-candidaturas"`)
	assert.NotContains(t, got, "<praia>")
}

func TestRenderApplicationApprovedEmail_NoNotes(t *testing.T) {
	got := RenderApplicationApprovedEmail("Ana", "Mutirão", "", "https://conectaong.org")
	assert.NotContains(t, got, "Recado da organização")
}

func TestRenderApplicationRejectedEmail(t *testing.T) {
	got := RenderApplicationRejectedEmail("Bruno", "Campanha do agasalho", "perfil incompatível\ncom a vaga", "https://conectaong.org")

	assert.Contains(t, got, "perfil incompatível<br>com a vaga")
	assert.Contains(t, got, "Atualização da candidatura")
}

func TestRenderApplicationCompletedEmail(t *testing.T) {
	got := RenderApplicationCompletedEmail("Carla", "Plantio", "Excelente!", "https://conectaong.org")
	assert.Contains(t, got, "Avaliação da organização")
	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html"))
}

func TestRenderGenericEmail(t *testing.T) {
	got := RenderGenericEmail("Ação cancelada", "A ação \"Plantio\" foi cancelada", "https://conectaong.org")
	assert.Contains(t, got, "A ação &#34;Plantio&#34; foi cancelada")
}
