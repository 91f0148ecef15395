package prompts

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/agnivade/interview_coach/session"
)

func TestBuild_Modes(t *testing.T) {
	tests := []struct {
		mode    session.Mode
		want    string
		notWant string
	}{
		{session.ModeQuestionByQuestion, "MODE ACTUEL : Question par Question", "Simulation 20 minutes"},
		{session.ModeFullInterview, "MODE ACTUEL : Simulation 20 minutes", "Question par Question"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			d := session.NewDescriptor(tt.mode, "Ingénieur, 3 ans chez Airbus", []string{"Pourquoi X-HEC ?", "Votre projet ?"})

			got := Build(d, "Programme entrepreneurial")

			assert.Contains(t, got, tt.want)
			assert.NotContains(t, got, tt.notWant)
			assert.Contains(t, got, "Ingénieur, 3 ans chez Airbus")
			assert.Contains(t, got, "Programme entrepreneurial")
			assert.Contains(t, got, "- Pourquoi X-HEC ?\n- Votre projet ?\n")
		})
	}
}

func TestBuild_Truncates(t *testing.T) {
	dossier := strings.Repeat("é", maxDossierRunes+50)
	context := strings.Repeat("à", maxContextRunes+50)
	d := session.NewDescriptor(session.ModeFullInterview, dossier, nil)

	got := Build(d, context)

	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, strings.Repeat("é", maxDossierRunes)+"\n")
	assert.NotContains(t, got, strings.Repeat("é", maxDossierRunes+1))
	assert.NotContains(t, got, strings.Repeat("à", maxContextRunes+1))
}

func TestBuild_Pure(t *testing.T) {
	d := session.NewDescriptor(session.ModeQuestionByQuestion, "dossier", []string{"q1"})
	assert.Equal(t, Build(d, "ctx"), Build(d, "ctx"))
}
