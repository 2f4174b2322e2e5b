package prompts

import (
	"fmt"
	"strings"

	"github.com/cothinklab/cothink/models"
)

// BuildPersonalityPrompt renders the full system prompt for one simulated
// student: profile sections, the foundation principle context, and the
// behavioral guideline block.
func BuildPersonalityPrompt(p *models.StudentProfile, foundationContext, guidelines string) string {
	var b strings.Builder

	b.WriteString("You are simulating a student with the following comprehensive profile:\n\n")

	fmt.Fprintf(&b, "CULTURAL BACKGROUND: %s\n", p.Cultural.PrimaryCulture)
	fmt.Fprintf(&b, "- Communication style: %s\n", p.Cultural.CommunicationStyle)
	fmt.Fprintf(&b, "- Authority relationship preference: %s\n", p.Cultural.AuthorityRelationship)
	fmt.Fprintf(&b, "- Collaboration approach: %s\n", p.Cultural.CollaborationPreference)
	fmt.Fprintf(&b, "- Technology adoption style: %s\n\n", p.Cultural.TechnologyAdoption)

	b.WriteString("LINGUISTIC PROFILE:\n")
	fmt.Fprintf(&b, "- Native language: %s\n", p.Linguistic.NativeLanguage)
	fmt.Fprintf(&b, "- English proficiency: %s\n", p.Linguistic.EnglishProficiency)
	fmt.Fprintf(&b, "- Communication confidence: %.1f/1.0\n", p.Linguistic.CommunicationConfidence)
	fmt.Fprintf(&b, "- Prefers visual aids: %t\n\n", p.Linguistic.PrefersVisualAids)

	b.WriteString("DEMOGRAPHIC BACKGROUND:\n")
	fmt.Fprintf(&b, "- Age: %d (%s)\n", p.Demographic.Age, p.Demographic.GradeLevel)
	fmt.Fprintf(&b, "- Gender: %s\n", p.Demographic.GenderIdentity)
	fmt.Fprintf(&b, "- Socioeconomic status: %s\n", p.Demographic.SocioeconomicStatus)
	fmt.Fprintf(&b, "- Location: %s\n", p.Demographic.GeographicLocation)
	fmt.Fprintf(&b, "- First-generation student: %t\n\n", p.Demographic.FirstGenerationStudent)

	b.WriteString("CURRENT EMOTIONAL STATE:\n")
	fmt.Fprintf(&b, "- Stress level: %.1f/1.0\n", p.Emotional.StressLevel)
	fmt.Fprintf(&b, "- Academic confidence: %.1f/1.0\n", p.Emotional.AcademicConfidence)
	fmt.Fprintf(&b, "- Current mood: %s\n", p.Emotional.CurrentMood)
	fmt.Fprintf(&b, "- Technology anxiety: %.1f/1.0\n", p.Emotional.TechnologyAnxiety)
	fmt.Fprintf(&b, "- Recent performance: %s\n\n", p.Emotional.RecentPerformance)

	b.WriteString("BEHAVIORAL TENDENCIES:\n")
	fmt.Fprintf(&b, "- Trust in AI: %.1f/1.0\n", p.Behavioral.BaselineTrust)
	fmt.Fprintf(&b, "- Help-seeking: %.1f/1.0\n", p.Behavioral.HelpSeekingTendency)
	fmt.Fprintf(&b, "- Authority deference: %.1f/1.0\n", p.Behavioral.AuthorityDeference)
	fmt.Fprintf(&b, "- Privacy concerns: %.1f/1.0\n\n", p.Behavioral.PrivacyConcern)

	if foundationContext != "" {
		b.WriteString("FOUNDATION PRINCIPLES TO FOLLOW:\n")
		b.WriteString(foundationContext)
		b.WriteString("\n\n")
	}

	if guidelines == "" {
		guidelines = PersonalityGuidelines
	}
	b.WriteString(guidelines)

	return b.String()
}

// BuildScenarioPrompt renders the user message for one tutor exchange.
func BuildScenarioPrompt(sc models.Scenario, instructions string) string {
	if instructions == "" {
		instructions = ScenarioInstructions
	}
	var b strings.Builder
	fmt.Fprintf(&b, "LEARNING SCENARIO: %s\n\n", sc.Context)
	fmt.Fprintf(&b, "TASK: %s\n", sc.LearningTask)
	fmt.Fprintf(&b, "AI TUTOR'S RESPONSE: %s\n\n", sc.TutorResponse)
	b.WriteString(instructions)
	return b.String()
}

// BuildSurveyPrompt renders the user message for a survey pass. Likert
// questions carry their scale inline so the model answers in range.
func BuildSurveyPrompt(sv models.Survey, instructions string) string {
	if instructions == "" {
		instructions = SurveyInstructions
	}
	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\nQUESTIONS:\n")
	for i, q := range sv.Questions {
		fmt.Fprintf(&b, "\n%d. %s", i+1, q.Question)
		if q.Type == "likert" {
			scale := q.Scale
			if scale == "" {
				scale = "1-7"
			}
			fmt.Fprintf(&b, " (Scale: %s)", scale)
		}
	}
	b.WriteString("\n\n")
	b.WriteString(SurveyClosing)
	return b.String()
}
