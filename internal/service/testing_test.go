package service

import (
	"context"

	"ai-knowledgebase-be/pkg/agent"
	"ai-knowledgebase-be/pkg/llm"
)

// nopLogger discards everything; the stubs below stand in for remote
// collaborators.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// stubProvider implements llm.LLMProvider with canned behavior.
type stubProvider struct {
	reply string
	err   error
	calls int
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, nil, options...)
}

// stubChatter implements AgentChatter with canned behavior and records the
// last message sent to the agent.
type stubChatter struct {
	reply       string
	err         error
	calls       int
	lastMessage string
}

func (c *stubChatter) Chat(ctx context.Context, message string, model agent.ModelConfig) (string, error) {
	c.calls++
	c.lastMessage = message
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}
