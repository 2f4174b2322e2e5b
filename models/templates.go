package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Cultural template keys.
const (
	CultureUSIndividualistic       = "us_individualistic"
	CultureEastAsianCollectivistic = "east_asian_collectivistic"
	CultureEuropeanBalanced        = "european_balanced"
	CultureLatinAmerican           = "latin_american"
	CultureMiddleEastern           = "middle_eastern"
	CultureAfricanUbuntu           = "african_ubuntu"
)

// Demographic scenario keys.
const (
	DemoUrbanHighSES   = "urban_high_ses"
	DemoRuralLowSES    = "rural_low_ses"
	DemoSuburbanMiddle = "suburban_middle"
	DemoUrbanImmigrant = "urban_immigrant"
)

// Emotional context keys.
const (
	EmotionExamStress        = "exam_stress"
	EmotionHighAchiever      = "high_achiever"
	EmotionStrugglingStudent = "struggling_student"
	EmotionCuriousExplorer   = "curious_explorer"
	EmotionTechAnxious       = "tech_anxious"
)

// culturalTemplates holds the research-derived cultural value constants.
var culturalTemplates = map[string]CulturalProfile{
	CultureUSIndividualistic: {
		PrimaryCulture: CultureUSIndividualistic,
		Values: map[string]float64{
			"individualism":           0.8,
			"uncertainty_avoidance":   0.4,
			"power_distance":          0.3,
			"achievement_orientation": 0.7,
		},
		CommunicationStyle:      StyleDirect,
		AuthorityRelationship:   AuthorityEgalitarian,
		CollaborationPreference: "individual",
		TechnologyAdoption:      AdoptionEarly,
	},
	CultureEastAsianCollectivistic: {
		PrimaryCulture: CultureEastAsianCollectivistic,
		Values: map[string]float64{
			"individualism":           0.3,
			"uncertainty_avoidance":   0.7,
			"power_distance":          0.8,
			"achievement_orientation": 0.9,
		},
		CommunicationStyle:      StyleIndirect,
		AuthorityRelationship:   AuthorityHierarchical,
		CollaborationPreference: "group",
		TechnologyAdoption:      AdoptionPragmatic,
	},
	CultureEuropeanBalanced: {
		PrimaryCulture: CultureEuropeanBalanced,
		Values: map[string]float64{
			"individualism":           0.6,
			"uncertainty_avoidance":   0.6,
			"power_distance":          0.4,
			"achievement_orientation": 0.6,
		},
		CommunicationStyle:      StyleMixed,
		AuthorityRelationship:   AuthorityMixed,
		CollaborationPreference: "balanced",
		TechnologyAdoption:      AdoptionPragmatic,
	},
	CultureLatinAmerican: {
		PrimaryCulture: CultureLatinAmerican,
		Values: map[string]float64{
			"individualism":           0.4,
			"uncertainty_avoidance":   0.8,
			"power_distance":          0.7,
			"achievement_orientation": 0.5,
		},
		CommunicationStyle:      StyleHighContext,
		AuthorityRelationship:   AuthorityHierarchical,
		CollaborationPreference: "group",
		TechnologyAdoption:      AdoptionConservative,
	},
	CultureMiddleEastern: {
		PrimaryCulture: CultureMiddleEastern,
		Values: map[string]float64{
			"individualism":           0.3,
			"uncertainty_avoidance":   0.7,
			"power_distance":          0.8,
			"achievement_orientation": 0.6,
		},
		CommunicationStyle:      StyleHighContext,
		AuthorityRelationship:   AuthorityHierarchical,
		CollaborationPreference: "group",
		TechnologyAdoption:      AdoptionConservative,
	},
	CultureAfricanUbuntu: {
		PrimaryCulture: CultureAfricanUbuntu,
		Values: map[string]float64{
			"individualism":           0.2,
			"uncertainty_avoidance":   0.5,
			"power_distance":          0.6,
			"achievement_orientation": 0.7,
		},
		CommunicationStyle:      StyleHighContext,
		AuthorityRelationship:   AuthorityMixed,
		CollaborationPreference: "group",
		TechnologyAdoption:      AdoptionPragmatic,
	},
}

// demographicScenario is the template for a demographic background.
type demographicScenario struct {
	SES                  string
	Location             string
	FamilyEducationLevel string
	FirstGeneration      bool
}

var demographicScenarios = map[string]demographicScenario{
	DemoUrbanHighSES:   {SES: "high", Location: "urban", FamilyEducationLevel: "graduate_degree", FirstGeneration: false},
	DemoRuralLowSES:    {SES: "low", Location: "rural", FamilyEducationLevel: "no_college", FirstGeneration: true},
	DemoSuburbanMiddle: {SES: "middle", Location: "suburban", FamilyEducationLevel: "college_graduate", FirstGeneration: false},
	DemoUrbanImmigrant: {SES: "lower-middle", Location: "urban", FamilyEducationLevel: "some_college", FirstGeneration: true},
}

// emotionalContext is the template for a current emotional state.
type emotionalContext struct {
	Stress      float64
	Confidence  float64
	TechAnxiety float64
	Mood        string
	Motivation  float64
	Performance string
}

var emotionalContexts = map[string]emotionalContext{
	EmotionExamStress:        {Stress: 0.8, Confidence: 0.4, TechAnxiety: 0.4, Mood: "stressed", Motivation: 0.7, Performance: "average"},
	EmotionHighAchiever:      {Stress: 0.6, Confidence: 0.9, TechAnxiety: 0.4, Mood: "positive", Motivation: 0.9, Performance: "excellent"},
	EmotionStrugglingStudent: {Stress: 0.7, Confidence: 0.3, TechAnxiety: 0.4, Mood: "overwhelmed", Motivation: 0.4, Performance: "below_average"},
	EmotionCuriousExplorer:   {Stress: 0.3, Confidence: 0.7, TechAnxiety: 0.4, Mood: "curious", Motivation: 0.8, Performance: "good"},
	EmotionTechAnxious:       {Stress: 0.6, Confidence: 0.6, TechAnxiety: 0.8, Mood: "neutral", Motivation: 0.5, Performance: "average"},
}

// ResearchContext bundles the template rotation used when generating a
// cohort for a given study population.
type ResearchContext struct {
	CulturalTemplates    []string
	DemographicScenarios []string
	EmotionalContexts    []string
	AgeMin, AgeMax       int
}

var researchContexts = map[string]ResearchContext{
	"university_diverse": {
		CulturalTemplates:    []string{CultureUSIndividualistic, CultureEastAsianCollectivistic, CultureEuropeanBalanced, CultureLatinAmerican},
		DemographicScenarios: []string{DemoUrbanHighSES, DemoSuburbanMiddle, DemoUrbanImmigrant, DemoRuralLowSES},
		EmotionalContexts:    []string{EmotionHighAchiever, EmotionExamStress, EmotionCuriousExplorer, EmotionStrugglingStudent},
		AgeMin:               18, AgeMax: 24,
	},
	"high_school_multicultural": {
		CulturalTemplates:    []string{CultureUSIndividualistic, CultureEastAsianCollectivistic, CultureLatinAmerican, CultureMiddleEastern},
		DemographicScenarios: []string{DemoSuburbanMiddle, DemoUrbanImmigrant, DemoRuralLowSES, DemoUrbanHighSES},
		EmotionalContexts:    []string{EmotionExamStress, EmotionCuriousExplorer, EmotionTechAnxious, EmotionHighAchiever},
		AgeMin:               14, AgeMax: 18,
	},
	"adult_learners": {
		CulturalTemplates:    []string{CultureUSIndividualistic, CultureEuropeanBalanced, CultureAfricanUbuntu},
		DemographicScenarios: []string{DemoSuburbanMiddle, DemoUrbanHighSES, DemoRuralLowSES},
		EmotionalContexts:    []string{EmotionCuriousExplorer, EmotionTechAnxious, EmotionStrugglingStudent},
		AgeMin:               25, AgeMax: 45,
	},
}

// ResearchContextNames returns the known research context keys.
func ResearchContextNames() []string {
	return []string{"university_diverse", "high_school_multicultural", "adult_learners"}
}

// CultureNames returns every cultural template key.
func CultureNames() []string {
	return []string{
		CultureUSIndividualistic, CultureEastAsianCollectivistic, CultureEuropeanBalanced,
		CultureLatinAmerican, CultureMiddleEastern, CultureAfricanUbuntu,
	}
}

var cultureLanguages = map[string]struct {
	Natives     []string
	Proficiency []string
}{
	CultureUSIndividualistic:       {Natives: []string{"English"}, Proficiency: []string{"native"}},
	CultureEastAsianCollectivistic: {Natives: []string{"Chinese", "Japanese", "Korean"}, Proficiency: []string{"fluent", "intermediate"}},
	CultureEuropeanBalanced:        {Natives: []string{"German", "French", "Spanish", "Italian"}, Proficiency: []string{"fluent"}},
	CultureLatinAmerican:           {Natives: []string{"Spanish"}, Proficiency: []string{"intermediate", "fluent"}},
	CultureMiddleEastern:           {Natives: []string{"Arabic"}, Proficiency: []string{"intermediate", "fluent"}},
	CultureAfricanUbuntu:           {Natives: []string{"Swahili", "Yoruba", "Zulu"}, Proficiency: []string{"fluent"}},
}

// Generator produces student profiles from the research templates. All
// randomness flows through the seeded source, so a cohort is reproducible
// from (context, count, seed).
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a profile generator seeded for reproducibility.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GenerateProfile builds one profile from the named templates. Empty
// template names are filled by random selection.
func (g *Generator) GenerateProfile(agentID, culture, demoScenario, emotion string, ageMin, ageMax int) (StudentProfile, error) {
	if culture == "" {
		culture = g.pick(CultureNames())
	}
	if demoScenario == "" {
		demoScenario = g.pick([]string{DemoUrbanHighSES, DemoRuralLowSES, DemoSuburbanMiddle, DemoUrbanImmigrant})
	}
	if emotion == "" {
		emotion = g.pick([]string{EmotionExamStress, EmotionHighAchiever, EmotionStrugglingStudent, EmotionCuriousExplorer, EmotionTechAnxious})
	}

	cultural, ok := culturalTemplates[culture]
	if !ok {
		return StudentProfile{}, fmt.Errorf("unknown cultural template: %s", culture)
	}
	demo, ok := demographicScenarios[demoScenario]
	if !ok {
		return StudentProfile{}, fmt.Errorf("unknown demographic scenario: %s", demoScenario)
	}
	emo, ok := emotionalContexts[emotion]
	if !ok {
		return StudentProfile{}, fmt.Errorf("unknown emotional context: %s", emotion)
	}

	age := ageMin + g.rng.Intn(ageMax-ageMin+1)

	linguistic := g.linguisticFor(culture)
	demographic := g.demographicFor(age, demo)
	emotional := emotionalFor(emo, demographic)
	profile := StudentProfile{
		AgentID:     agentID,
		ProfileName: fmt.Sprintf("%s_%s_%s_%d", culture, demoScenario, emotion, age),
		Cultural:    cultural,
		Linguistic:  linguistic,
		Demographic: demographic,
		Emotional:   emotional,
	}
	g.deriveCoreAttributes(&profile)

	if err := ValidateStruct(profile); err != nil {
		return StudentProfile{}, fmt.Errorf("generated profile invalid: %w", err)
	}
	return profile, nil
}

func (g *Generator) linguisticFor(culture string) LinguisticProfile {
	langs, ok := cultureLanguages[culture]
	if !ok {
		langs.Natives = []string{"English"}
		langs.Proficiency = []string{"native"}
	}
	native := g.pick(langs.Natives)
	proficiency := g.pick(langs.Proficiency)

	confidence := 0.6
	if proficiency == "native" || proficiency == "fluent" {
		confidence = 0.8
	}
	learningContext := "academic"
	if proficiency == "native" {
		learningContext = "native"
	}
	return LinguisticProfile{
		NativeLanguage:          native,
		EnglishProficiency:      proficiency,
		LearningContext:         learningContext,
		CommunicationConfidence: confidence,
		PrefersVisualAids:       proficiency != "native",
	}
}

func (g *Generator) demographicFor(age int, demo demographicScenario) DemographicProfile {
	var grade string
	switch {
	case age <= 18:
		grade = fmt.Sprintf("grade_%d", age-5)
	case age <= 22:
		grade = g.pick([]string{"freshman", "sophomore", "junior", "senior"})
	default:
		grade = "graduate"
	}

	disability := ""
	if g.rng.Float64() <= 0.15 {
		disability = g.pick([]string{"learning", "physical", "sensory"})
	}

	return DemographicProfile{
		Age:                    age,
		GradeLevel:             grade,
		GenderIdentity:         g.pick([]string{"female", "male", "non-binary"}),
		SocioeconomicStatus:    demo.SES,
		GeographicLocation:     demo.Location,
		FamilyEducationLevel:   demo.FamilyEducationLevel,
		FirstGenerationStudent: demo.FirstGeneration,
		DisabilityStatus:       disability,
	}
}

func emotionalFor(emo emotionalContext, demo DemographicProfile) EmotionalProfile {
	stressModifier := 0.0
	if demo.SocioeconomicStatus == "low" || demo.SocioeconomicStatus == "lower-middle" {
		stressModifier = 0.1
	}
	confidenceModifier := 0.0
	if demo.FirstGenerationStudent {
		confidenceModifier = -0.1
	}
	support := 0.6
	if demo.SocioeconomicStatus == "high" {
		support = 0.8
	}

	return EmotionalProfile{
		StressLevel:           clamp01(emo.Stress + stressModifier),
		AcademicConfidence:    clamp01(emo.Confidence + confidenceModifier),
		TechnologyAnxiety:     emo.TechAnxiety,
		SocialAnxiety:         0.4,
		CurrentMood:           emo.Mood,
		MotivationLevel:       emo.Motivation,
		RecentPerformance:     emo.Performance,
		SupportSystemStrength: support,
		MentalHealthStatus:    "good",
	}
}

// deriveCoreAttributes fills the coarse attributes and behavioral dials from
// the cultural, demographic, and emotional profiles.
func (g *Generator) deriveCoreAttributes(p *StudentProfile) {
	switch {
	case p.Demographic.Age <= 18:
		p.AgeGroup = "k12"
	case p.Demographic.Age <= 25:
		p.AgeGroup = "university"
	default:
		p.AgeGroup = "adult"
	}

	switch p.Emotional.RecentPerformance {
	case "excellent":
		p.AcademicLevel = "high"
	case "good":
		p.AcademicLevel = g.pick([]string{"medium", "high"})
	case "below_average":
		p.AcademicLevel = g.pick([]string{"low", "medium"})
	case "poor":
		p.AcademicLevel = "low"
	default:
		p.AcademicLevel = "medium"
	}

	baseTech := 0.5
	if p.Demographic.Age < 25 {
		baseTech = 0.7
	}
	techModifier := map[TechnologyAdoption]float64{
		AdoptionEarly:        0.2,
		AdoptionPragmatic:    0.0,
		AdoptionConservative: -0.2,
		AdoptionSkeptical:    -0.3,
	}[p.Cultural.TechnologyAdoption]
	techScore := baseTech + techModifier
	switch {
	case techScore > 0.7:
		p.TechComfort = "advanced"
	case techScore > 0.4:
		p.TechComfort = "intermediate"
	default:
		p.TechComfort = "novice"
	}

	switch p.TechComfort {
	case "advanced":
		p.AIExperience = g.pick([]string{"moderate", "extensive"})
	case "intermediate":
		p.AIExperience = g.pick([]string{"limited", "moderate"})
	default:
		p.AIExperience = g.pick([]string{"none", "limited"})
	}

	p.LearningStyle = g.pick([]string{"visual", "auditory", "kinesthetic", "reading"})

	uncertainty := p.Cultural.Values["uncertainty_avoidance"]
	powerDistance := p.Cultural.Values["power_distance"]
	individualism := p.Cultural.Values["individualism"]

	p.Behavioral = BehavioralParameters{
		BaselineTrust:               clamp01(uncertainty*0.3 + p.Emotional.AcademicConfidence*0.4 + (1-p.Emotional.TechnologyAnxiety)*0.3),
		CognitiveLoadTolerance:      clamp01(p.Emotional.AcademicConfidence*0.6 + (1-p.Emotional.StressLevel)*0.4),
		HelpSeekingTendency:         clamp01(powerDistance*0.4 + p.Emotional.SupportSystemStrength*0.6),
		MetacognitiveAwareness:      clamp01(p.Emotional.AcademicConfidence*0.5 + (1-uncertainty)*0.5),
		RiskTolerance:               clamp01((1-uncertainty)*0.7 + p.Emotional.MotivationLevel*0.3),
		CoIntelligenceOrientation:   0.4 + g.rng.Float64()*0.5,
		HumanCenteredValues:         0.5 + g.rng.Float64()*0.4,
		CulturalAdaptationSpeed:     clamp01((1-uncertainty)*0.8 + p.Emotional.MotivationLevel*0.2),
		PeerInfluenceSusceptibility: clamp01(0.7 - individualism*0.5),
		AuthorityDeference:          powerDistance,
		CreativeRiskTaking:          clamp01((1-uncertainty)*0.6 + p.Emotional.MotivationLevel*0.4),
		PrivacyConcern:              clamp01(uncertainty*0.6 + p.Emotional.TechnologyAnxiety*0.4),
	}
}

// GenerateCohort builds a diverse cohort for the named research context,
// cycling through the context's templates so diversity is guaranteed even
// for small cohorts.
func GenerateCohort(count int, researchContext string, seed int64, enabledCultures []string) (Cohort, error) {
	if count < 1 {
		return Cohort{}, fmt.Errorf("cohort size must be positive, got %d", count)
	}
	ctx, ok := researchContexts[researchContext]
	if !ok {
		return Cohort{}, fmt.Errorf("unknown research context %q (known: %v)", researchContext, ResearchContextNames())
	}

	cultures := ctx.CulturalTemplates
	if len(enabledCultures) > 0 {
		cultures = intersect(ctx.CulturalTemplates, enabledCultures)
		if len(cultures) == 0 {
			return Cohort{}, fmt.Errorf("enabled cultures %v leave no templates for context %q", enabledCultures, researchContext)
		}
	}

	g := NewGenerator(seed)
	profiles := make([]StudentProfile, 0, count)
	for i := 0; i < count; i++ {
		agentID := fmt.Sprintf("agent_%03d", i)
		culture := cultures[i%len(cultures)]
		demo := ctx.DemographicScenarios[i%len(ctx.DemographicScenarios)]
		emotion := ctx.EmotionalContexts[i%len(ctx.EmotionalContexts)]

		profile, err := g.GenerateProfile(agentID, culture, demo, emotion, ctx.AgeMin, ctx.AgeMax)
		if err != nil {
			return Cohort{}, fmt.Errorf("generate profile %s: %w", agentID, err)
		}
		profiles = append(profiles, profile)
	}

	// The cohort ID comes from a deterministic UUID space so identical
	// parameters still produce distinct cohort identities per generation.
	return Cohort{
		ID:              uuid.New().String(),
		ResearchContext: researchContext,
		Seed:            seed,
		CreatedAt:       time.Now().UTC(),
		Profiles:        profiles,
	}, nil
}

func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := set[s]; ok {
			out = append(out, s)
		}
	}
	return out
}
