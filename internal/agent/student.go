// Package agent implements the LLM-simulated student participants.
package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/cothinklab/cothink/models"
	"github.com/cothinklab/cothink/prompts"
)

// StudentAgent simulates one research participant. The personality prompt is
// built once from the profile and sent as the system message of every call,
// and recent exchanges are replayed so the persona stays consistent within a
// session.
type StudentAgent struct {
	Profile models.StudentProfile

	chatModel   model.BaseChatModel
	personality string

	mu     sync.Mutex
	memory []*schema.Message
}

// maxMemoryMessages bounds the replayed history so prompts stay within the
// model's context window on long sessions.
const maxMemoryMessages = 10

// New builds a StudentAgent for the given profile. foundationContext and
// guidelines feed the personality prompt; pass empty strings for defaults.
func New(profile models.StudentProfile, chatModel model.BaseChatModel, foundationContext, guidelines string) *StudentAgent {
	return &StudentAgent{
		Profile:     profile,
		chatModel:   chatModel,
		personality: prompts.BuildPersonalityPrompt(&profile, foundationContext, guidelines),
	}
}

// PersonalityPrompt exposes the rendered system prompt, mainly for
// inspection commands.
func (a *StudentAgent) PersonalityPrompt() string {
	return a.personality
}

func (a *StudentAgent) generate(ctx context.Context, userPrompt string) (string, error) {
	a.mu.Lock()
	messages := make([]*schema.Message, 0, len(a.memory)+2)
	messages = append(messages, schema.SystemMessage(a.personality))
	messages = append(messages, a.memory...)
	messages = append(messages, schema.UserMessage(userPrompt))
	a.mu.Unlock()

	resp, err := a.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("agent %s: generate: %w", a.Profile.AgentID, err)
	}
	if resp == nil || resp.Content == "" {
		return "", fmt.Errorf("agent %s: empty model response", a.Profile.AgentID)
	}

	a.mu.Lock()
	a.memory = append(a.memory, schema.UserMessage(userPrompt), schema.AssistantMessage(resp.Content, nil))
	if len(a.memory) > maxMemoryMessages {
		a.memory = a.memory[len(a.memory)-maxMemoryMessages:]
	}
	a.mu.Unlock()

	return resp.Content, nil
}

// RespondToTutor simulates the student's reaction to one AI tutor exchange.
func (a *StudentAgent) RespondToTutor(ctx context.Context, sc models.Scenario, instructions string) (string, error) {
	return a.generate(ctx, prompts.BuildScenarioPrompt(sc, instructions))
}

// RespondToSurvey answers a survey in character.
func (a *StudentAgent) RespondToSurvey(ctx context.Context, sv models.Survey, instructions string) (string, error) {
	return a.generate(ctx, prompts.BuildSurveyPrompt(sv, instructions))
}

// ResetMemory clears the session history, typically between scenarios when
// carryover is not wanted.
func (a *StudentAgent) ResetMemory() {
	a.mu.Lock()
	a.memory = nil
	a.mu.Unlock()
}
