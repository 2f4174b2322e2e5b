package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// CommunicationStyle captures how a culture tends to communicate.
type CommunicationStyle string

const (
	StyleDirect      CommunicationStyle = "direct"
	StyleIndirect    CommunicationStyle = "indirect"
	StyleHighContext CommunicationStyle = "high-context"
	StyleLowContext  CommunicationStyle = "low-context"
	StyleMixed       CommunicationStyle = "mixed"
)

// AuthorityRelationship captures the preferred relationship to authority figures.
type AuthorityRelationship string

const (
	AuthorityHierarchical AuthorityRelationship = "hierarchical"
	AuthorityEgalitarian  AuthorityRelationship = "egalitarian"
	AuthorityMixed        AuthorityRelationship = "mixed"
)

// TechnologyAdoption captures openness to new technology.
type TechnologyAdoption string

const (
	AdoptionEarly        TechnologyAdoption = "early-adopter"
	AdoptionPragmatic    TechnologyAdoption = "pragmatic"
	AdoptionConservative TechnologyAdoption = "conservative"
	AdoptionSkeptical    TechnologyAdoption = "skeptical"
)

// CulturalProfile describes the cultural background affecting AI interaction
// patterns. Values follow Hofstede-style dimensions normalized to [0,1].
type CulturalProfile struct {
	PrimaryCulture          string                `json:"primaryCulture" yaml:"primaryCulture" validate:"required"`
	Values                  map[string]float64    `json:"values" yaml:"values" validate:"required,dive,min=0,max=1"`
	CommunicationStyle      CommunicationStyle    `json:"communicationStyle" yaml:"communicationStyle" validate:"required,oneof=direct indirect high-context low-context mixed"`
	AuthorityRelationship   AuthorityRelationship `json:"authorityRelationship" yaml:"authorityRelationship" validate:"required,oneof=hierarchical egalitarian mixed"`
	CollaborationPreference string                `json:"collaborationPreference" yaml:"collaborationPreference" validate:"required,oneof=individual group balanced"`
	TechnologyAdoption      TechnologyAdoption    `json:"technologyAdoption" yaml:"technologyAdoption" validate:"required,oneof=early-adopter pragmatic conservative skeptical"`
}

// LinguisticProfile describes language background affecting AI communication.
type LinguisticProfile struct {
	NativeLanguage          string   `json:"nativeLanguage" yaml:"nativeLanguage" validate:"required"`
	EnglishProficiency      string   `json:"englishProficiency" yaml:"englishProficiency" validate:"required,oneof=native fluent intermediate basic"`
	OtherLanguages          []string `json:"otherLanguages,omitempty" yaml:"otherLanguages,omitempty"`
	LearningContext         string   `json:"learningContext" yaml:"learningContext"`
	CommunicationConfidence float64  `json:"communicationConfidence" yaml:"communicationConfidence" validate:"min=0,max=1"`
	PrefersVisualAids       bool     `json:"prefersVisualAids" yaml:"prefersVisualAids"`
}

// DemographicProfile holds detailed demographic information.
type DemographicProfile struct {
	Age                    int    `json:"age" yaml:"age" validate:"required,min=10,max=80"`
	GradeLevel             string `json:"gradeLevel" yaml:"gradeLevel"`
	GenderIdentity         string `json:"genderIdentity" yaml:"genderIdentity" validate:"required"`
	SocioeconomicStatus    string `json:"socioeconomicStatus" yaml:"socioeconomicStatus" validate:"required,oneof=low lower-middle middle upper-middle high"`
	GeographicLocation     string `json:"geographicLocation" yaml:"geographicLocation" validate:"required,oneof=urban suburban rural"`
	FamilyEducationLevel   string `json:"familyEducationLevel" yaml:"familyEducationLevel"`
	FirstGenerationStudent bool   `json:"firstGenerationStudent" yaml:"firstGenerationStudent"`
	DisabilityStatus       string `json:"disabilityStatus,omitempty" yaml:"disabilityStatus,omitempty"`
}

// EmotionalProfile is the current emotional and psychological state.
type EmotionalProfile struct {
	StressLevel           float64 `json:"stressLevel" yaml:"stressLevel" validate:"min=0,max=1"`
	AcademicConfidence    float64 `json:"academicConfidence" yaml:"academicConfidence" validate:"min=0,max=1"`
	TechnologyAnxiety     float64 `json:"technologyAnxiety" yaml:"technologyAnxiety" validate:"min=0,max=1"`
	SocialAnxiety         float64 `json:"socialAnxiety" yaml:"socialAnxiety" validate:"min=0,max=1"`
	CurrentMood           string  `json:"currentMood" yaml:"currentMood" validate:"required"`
	MotivationLevel       float64 `json:"motivationLevel" yaml:"motivationLevel" validate:"min=0,max=1"`
	RecentPerformance     string  `json:"recentPerformance" yaml:"recentPerformance"`
	SupportSystemStrength float64 `json:"supportSystemStrength" yaml:"supportSystemStrength" validate:"min=0,max=1"`
	MentalHealthStatus    string  `json:"mentalHealthStatus" yaml:"mentalHealthStatus"`
}

// BehavioralParameters are the psychological dials derived from the rest of
// the profile. Everything here sits in [0,1].
type BehavioralParameters struct {
	BaselineTrust               float64 `json:"baselineTrust" yaml:"baselineTrust" validate:"min=0,max=1"`
	CognitiveLoadTolerance      float64 `json:"cognitiveLoadTolerance" yaml:"cognitiveLoadTolerance" validate:"min=0,max=1"`
	HelpSeekingTendency         float64 `json:"helpSeekingTendency" yaml:"helpSeekingTendency" validate:"min=0,max=1"`
	MetacognitiveAwareness      float64 `json:"metacognitiveAwareness" yaml:"metacognitiveAwareness" validate:"min=0,max=1"`
	RiskTolerance               float64 `json:"riskTolerance" yaml:"riskTolerance" validate:"min=0,max=1"`
	CoIntelligenceOrientation   float64 `json:"coIntelligenceOrientation" yaml:"coIntelligenceOrientation" validate:"min=0,max=1"`
	HumanCenteredValues         float64 `json:"humanCenteredValues" yaml:"humanCenteredValues" validate:"min=0,max=1"`
	CulturalAdaptationSpeed     float64 `json:"culturalAdaptationSpeed" yaml:"culturalAdaptationSpeed" validate:"min=0,max=1"`
	PeerInfluenceSusceptibility float64 `json:"peerInfluenceSusceptibility" yaml:"peerInfluenceSusceptibility" validate:"min=0,max=1"`
	AuthorityDeference          float64 `json:"authorityDeference" yaml:"authorityDeference" validate:"min=0,max=1"`
	CreativeRiskTaking          float64 `json:"creativeRiskTaking" yaml:"creativeRiskTaking" validate:"min=0,max=1"`
	PrivacyConcern              float64 `json:"privacyConcern" yaml:"privacyConcern" validate:"min=0,max=1"`
}

// StudentProfile is the complete description of one simulated participant.
type StudentProfile struct {
	AgentID     string `json:"agentId" yaml:"agentId" validate:"required"`
	ProfileName string `json:"profileName" yaml:"profileName" validate:"required"`

	// Coarse attributes kept for grouping in analysis output.
	AgeGroup      string `json:"ageGroup" yaml:"ageGroup" validate:"required,oneof=k12 university adult"`
	AcademicLevel string `json:"academicLevel" yaml:"academicLevel" validate:"required,oneof=low medium high"`
	TechComfort   string `json:"techComfort" yaml:"techComfort" validate:"required,oneof=novice intermediate advanced"`
	LearningStyle string `json:"learningStyle" yaml:"learningStyle" validate:"required,oneof=visual auditory kinesthetic reading"`
	AIExperience  string `json:"aiExperience" yaml:"aiExperience" validate:"required,oneof=none limited moderate extensive"`

	Cultural    CulturalProfile    `json:"cultural" yaml:"cultural" validate:"required"`
	Linguistic  LinguisticProfile  `json:"linguistic" yaml:"linguistic" validate:"required"`
	Demographic DemographicProfile `json:"demographic" yaml:"demographic" validate:"required"`
	Emotional   EmotionalProfile   `json:"emotional" yaml:"emotional" validate:"required"`

	Behavioral BehavioralParameters `json:"behavioral" yaml:"behavioral" validate:"required"`
}

// ProfileSnapshot is the compact profile view attached to every recorded
// interaction so the dataset is analyzable without joining back to the cohort.
type ProfileSnapshot struct {
	Culture            string  `json:"culture" yaml:"culture"`
	Age                int     `json:"age" yaml:"age"`
	Gender             string  `json:"gender" yaml:"gender"`
	NativeLanguage     string  `json:"nativeLanguage" yaml:"nativeLanguage"`
	EnglishProficiency string  `json:"englishProficiency" yaml:"englishProficiency"`
	SES                string  `json:"ses" yaml:"ses"`
	Mood               string  `json:"mood" yaml:"mood"`
	Stress             float64 `json:"stress" yaml:"stress"`
	Confidence         float64 `json:"confidence" yaml:"confidence"`
	Trust              float64 `json:"trust" yaml:"trust"`
	HelpSeeking        float64 `json:"helpSeeking" yaml:"helpSeeking"`
	AuthorityDeference float64 `json:"authorityDeference" yaml:"authorityDeference"`
	PrivacyConcern     float64 `json:"privacyConcern" yaml:"privacyConcern"`
}

// Snapshot projects the profile into the compact per-record view.
func (p *StudentProfile) Snapshot() ProfileSnapshot {
	return ProfileSnapshot{
		Culture:            p.Cultural.PrimaryCulture,
		Age:                p.Demographic.Age,
		Gender:             p.Demographic.GenderIdentity,
		NativeLanguage:     p.Linguistic.NativeLanguage,
		EnglishProficiency: p.Linguistic.EnglishProficiency,
		SES:                p.Demographic.SocioeconomicStatus,
		Mood:               p.Emotional.CurrentMood,
		Stress:             p.Emotional.StressLevel,
		Confidence:         p.Emotional.AcademicConfidence,
		Trust:              p.Behavioral.BaselineTrust,
		HelpSeeking:        p.Behavioral.HelpSeekingTendency,
		AuthorityDeference: p.Behavioral.AuthorityDeference,
		PrivacyConcern:     p.Behavioral.PrivacyConcern,
	}
}

// Cohort is a generated set of student profiles plus the parameters that
// produced it, so a run is reproducible from the stored cohort file.
type Cohort struct {
	ID              string           `json:"id" yaml:"id" validate:"required,uuid4"`
	ResearchContext string           `json:"researchContext" yaml:"researchContext" validate:"required"`
	Seed            int64            `json:"seed" yaml:"seed"`
	CreatedAt       time.Time        `json:"createdAt" yaml:"createdAt" validate:"required"`
	Profiles        []StudentProfile `json:"profiles" yaml:"profiles" validate:"required,min=1,dive"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct with validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
