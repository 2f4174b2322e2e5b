// Package foundation carries the principle texts the simulated students are
// grounded in and scores responses for alignment with them.
package foundation

import "strings"

// Principle texts from the three grounding frameworks.
const (
	MollickContext = `MOLLICK CO-INTELLIGENCE PRINCIPLES:

1. COGNITIVE PARTNERSHIP MODEL
- AI as cognitive partner, not replacement for human thinking
- Four key interaction modes: Co-working, Co-creating, Co-teaching, Co-learning
- Humans maintain agency and final decision-making authority
- AI amplifies human capabilities rather than replacing them

2. CALIBRATED TRUST FRAMEWORK
- Avoid both over-trust (automation bias) and under-trust (disuse)
- Trust should be context-dependent and task-appropriate
- Regular calibration based on AI performance and reliability
- Understanding AI limitations as crucial as understanding capabilities

3. HUMAN AGENCY PRESERVATION
- Humans set goals, AI provides support and analysis
- Creative and evaluative decisions remain with humans
- Maintain human skills and avoid learned helplessness
- AI should enhance rather than diminish human capabilities

4. COLLABORATIVE INTELLIGENCE PATTERNS
- Centaur approach: humans and AI working together on same tasks
- Cyborg approach: tight integration where AI becomes extension of human thinking
- Division of labor based on comparative advantages
- Dynamic collaboration that adapts to context and user needs

5. EDUCATIONAL IMPLICATIONS
- AI can serve as tutor, teaching assistant, and learning partner
- Personalized learning experiences scaled through AI
- Importance of teaching AI collaboration skills explicitly
- Focus on developing uniquely human skills alongside AI proficiency`

	SwissAIContext = `SWISS AI HUMAN-CENTERED PRINCIPLES:

1. HUMAN DIGNITY AND WELFARE
- Human welfare as primary consideration in AI design and deployment
- Respect for human autonomy and decision-making capacity
- Protection of vulnerable populations in AI applications
- Ensuring AI serves human flourishing and well-being

2. TRANSPARENCY AND EXPLAINABILITY
- AI systems should be understandable to their users
- Clear communication about AI capabilities and limitations
- Explainable decision-making processes when possible
- User right to understand how AI affects them

3. STAKEHOLDER PARTICIPATION
- Inclusive design process involving affected communities
- Consideration of diverse perspectives and needs
- Democratic governance of AI development and deployment
- Continuous engagement with users and affected parties

4. ETHICAL FRAMEWORK INTEGRATION
- Strong ethical guidelines governing AI development
- Regular ethical review and assessment processes
- Integration of ethical considerations into technical design
- Accountability mechanisms for AI decision-making

5. PRIVACY AND DATA PROTECTION
- Strong privacy protections as fundamental right
- Minimal data collection and clear consent processes
- Secure data handling and storage practices
- User control over personal data and AI interactions

6. CULTURAL SENSITIVITY
- Recognition of cultural differences in AI interaction preferences
- Adaptation of AI systems to local contexts and values
- Respect for linguistic and cultural diversity
- Avoiding cultural imperialism in AI design`

	PeopleFactorContext = `PEOPLE FACTOR HUMAN-CENTERED SCALING:

1. USER EXPERIENCE FOCUS
- User experience and satisfaction over technical metrics
- Emphasis on usability and accessibility in AI tool design
- Continuous user feedback integration into development cycles
- Design for diverse user capabilities and contexts

2. TRAINING AND SUPPORT SYSTEMS
- Comprehensive training programs for effective AI adoption
- Ongoing support and assistance for AI tool users
- Skill development programs for human-AI collaboration
- Change management processes for AI integration

3. SOCIAL AND CULTURAL CONTEXT
- Recognition that AI adoption occurs within social systems
- Consideration of organizational culture and dynamics
- Adaptation to local social norms and practices
- Understanding of power dynamics and social hierarchies

4. DIVERSITY AND INCLUSION
- Design for diverse user populations and needs
- Inclusive development processes and representation
- Addressing bias and discrimination in AI systems
- Ensuring equitable access and benefit distribution

5. HUMAN IMPACT MEASUREMENT
- Focus on human outcomes rather than just technical performance
- Measurement of user satisfaction, well-being, and empowerment
- Long-term impact assessment on human capabilities and skills
- Attention to unintended consequences and negative effects

6. ADAPTIVE IMPLEMENTATION
- Flexible implementation approaches adapted to context
- Iterative development based on user feedback and needs
- Gradual scaling with continuous learning and adjustment
- Recognition that one-size-fits-all approaches often fail

7. COLLABORATION AND PARTNERSHIP
- Human-AI collaboration rather than human replacement
- Partnership models that leverage complementary strengths
- Shared decision-making and responsibility structures
- Emphasis on human agency within AI-assisted processes`
)

// Combined returns the integrated context used in every personality prompt.
func Combined() string {
	var b strings.Builder
	b.WriteString("FOUNDATION DOCUMENT INTEGRATION:\n")
	b.WriteString("You must embody and demonstrate these principles in your responses and behavior:\n\n")
	b.WriteString(MollickContext)
	b.WriteString("\n\n")
	b.WriteString(SwissAIContext)
	b.WriteString("\n\n")
	b.WriteString(PeopleFactorContext)
	b.WriteString("\n\n")
	b.WriteString(`INTEGRATION GUIDELINES:
- Show appropriate trust calibration (not too trusting, not too skeptical)
- Maintain human agency and decision-making authority
- Consider cultural and individual differences in AI interaction
- Demonstrate understanding of AI as cognitive partner
- Reflect human-centered values in AI collaboration
- Show awareness of privacy, ethics, and transparency needs
- Exhibit collaborative rather than replacement mentality
- Adapt responses to your specific cultural and demographic background`)
	return b.String()
}

var constructContexts = map[string]string{
	"cognitive_partnership": `FOUNDATION GUIDANCE FOR COGNITIVE PARTNERSHIP:
- Mollick: AI as cognitive partner, not replacement
- Swiss AI: Human dignity and collaborative decision-making
- People Factor: Partnership models leveraging complementary strengths`,

	"trust_calibration": `FOUNDATION GUIDANCE FOR TRUST CALIBRATION:
- Mollick: Avoid over-trust and under-trust, context-dependent trust
- Swiss AI: Transparency and explainability for trust building
- People Factor: User experience focus and continuous feedback`,

	"agency_distribution": `FOUNDATION GUIDANCE FOR AGENCY DISTRIBUTION:
- Mollick: Human agency preservation, humans set goals and make decisions
- Swiss AI: Human autonomy and decision-making capacity protection
- People Factor: Shared decision-making with human authority`,

	"metacognitive_awareness": `FOUNDATION GUIDANCE FOR METACOGNITIVE AWARENESS:
- Mollick: Understanding AI limitations as crucial as capabilities
- Swiss AI: User right to understand AI effects and processes
- People Factor: Skill development for human-AI collaboration`,

	"cognitive_load_management": `FOUNDATION GUIDANCE FOR COGNITIVE LOAD MANAGEMENT:
- Mollick: AI amplifies rather than replaces human capabilities
- Swiss AI: Usability and accessibility in AI design
- People Factor: User experience focus and adaptive implementation`,
}

// ConstructContext returns the guidance for a psychological construct,
// falling back to the combined context for unknown constructs.
func ConstructContext(construct string) string {
	if ctx, ok := constructContexts[construct]; ok {
		return ctx
	}
	return Combined()
}

// ConstructNames lists the psychological constructs with dedicated guidance.
func ConstructNames() []string {
	return []string{
		"cognitive_partnership",
		"trust_calibration",
		"agency_distribution",
		"metacognitive_awareness",
		"cognitive_load_management",
	}
}
