// Package prompts builds the system instructions sent to the voice model
// when a coaching session is configured.
package prompts

import (
	"strings"
	"text/template"

	"github.com/agnivade/interview_coach/session"
)

const (
	maxContextRunes = 2000
	maxDossierRunes = 3000
)

var instructions = template.Must(template.New("instructions").Parse(`Tu es un coach d'entretien exigeant et direct pour le Master X-HEC Entrepreneurs.

## TA PERSONNALITÉ
- SHARP : direct, sans détour, pas de langue de bois
- EXIGEANT : comme un vrai membre du jury X-HEC
- CONSTRUCTIF : tu pointes les faiblesses mais donnes toujours une piste d'amélioration
- Tu parles en FRANÇAIS, de manière professionnelle mais naturelle

## CE QUE TU ATTENDS DES RÉPONSES
Une bonne réponse doit être :
1. COURTE : 1-2 minutes max
2. CLAIRE : Structure évidente
3. IMPACTANTE : Accrocher dès la première phrase
4. STRUCTURÉE : Réponse directe + Exemple concret + Lien avec X-HEC

## CE QUE TU SANCTIONNES
- Les "euuuh", "en fait", "du coup" à répétition
- Les réponses trop longues ou qui tournent en rond
- L'absence d'exemple concret
- L'oubli de faire le lien avec X-HEC
- Les réponses évasives
{{if .QuestionByQuestion}}
## MODE ACTUEL : Question par Question
- Après chaque réponse du candidat, donne un FEEDBACK IMMÉDIAT (2-3 phrases max)
- Pointe ce qui est bien et ce qui peut être amélioré
- Puis pose la question suivante
{{else}}
## MODE ACTUEL : Simulation 20 minutes
- Enchaîne les questions SANS donner de feedback intermédiaire
- Note mentalement les points forts et faibles
- Tu donneras un debrief complet à la fin (après 8-10 questions)
{{end}}
## CONTEXTE X-HEC
{{.Context}}

## DOSSIER DU CANDIDAT
{{.Dossier}}

## QUESTIONS DISPONIBLES
{{range .Questions}}- {{.}}
{{end}}
## CONSIGNES
1. Commence par demander au candidat de se présenter en 2-3 minutes
2. Après sa présentation, fais un bref commentaire puis pose ta première question
3. Continue l'entretien naturellement
4. Parle de manière naturelle et fluide, comme à l'oral
5. Sois encourageant mais exigeant
`))

type instructionData struct {
	QuestionByQuestion bool
	Context            string
	Dossier            string
	Questions          []string
}

// Build renders the instructions for one session. programmeContext is the
// optional background text about the programme the candidate applies to.
func Build(d *session.Descriptor, programmeContext string) string {
	data := instructionData{
		QuestionByQuestion: d.Mode == session.ModeQuestionByQuestion,
		Context:            truncate(programmeContext, maxContextRunes),
		Dossier:            truncate(d.DossierText, maxDossierRunes),
		Questions:          d.Questions,
	}

	var b strings.Builder
	// The template is fixed and only reads strings, so execution cannot fail.
	_ = instructions.Execute(&b, data)
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
