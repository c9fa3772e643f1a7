// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"resumeats/ats-analyzer/internal/llm"
)

// Reply is one scripted provider answer.
type Reply struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	Err              error
}

// ScriptedProvider returns its replies in order and records every payload.
type ScriptedProvider struct {
	mu       sync.Mutex
	replies  []Reply
	payloads []*llm.Payload
}

func NewScriptedProvider(replies ...Reply) *ScriptedProvider {
	return &ScriptedProvider{replies: replies}
}

// Complete implements llm.Provider.
func (p *ScriptedProvider) Complete(ctx context.Context, payload *llm.Payload) (*llm.Completion, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.payloads = append(p.payloads, payload)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(p.replies) == 0 {
		return nil, fmt.Errorf("llmtest: no scripted reply left for call %d", len(p.payloads))
	}
	reply := p.replies[0]
	p.replies = p.replies[1:]
	if reply.Err != nil {
		return nil, reply.Err
	}
	return &llm.Completion{
		Content:          reply.Content,
		Model:            payload.Model.String(),
		PromptTokens:     reply.PromptTokens,
		CompletionTokens: reply.CompletionTokens,
	}, nil
}

// Payloads returns the payloads received so far.
func (p *ScriptedProvider) Payloads() []*llm.Payload {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*llm.Payload, len(p.payloads))
	copy(out, p.payloads)
	return out
}

// Calls returns how many requests the provider has received.
func (p *ScriptedProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

var _ llm.Provider = (*ScriptedProvider)(nil)

// RoutedProvider answers by matching a substring of the system prompt, which
// keeps replies stable when calls run concurrently.
type RoutedProvider struct {
	mu     sync.Mutex
	routes map[string]Reply
	calls  map[string]int
}

func NewRoutedProvider(routes map[string]Reply) *RoutedProvider {
	return &RoutedProvider{routes: routes, calls: make(map[string]int)}
}

// Complete implements llm.Provider.
func (p *RoutedProvider) Complete(ctx context.Context, payload *llm.Payload) (*llm.Completion, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var system string
	for _, m := range payload.Messages {
		if m.Role == llm.RoleSystem {
			system = m.Text
		}
	}
	for key, reply := range p.routes {
		if !strings.Contains(system, key) {
			continue
		}
		p.calls[key]++
		if reply.Err != nil {
			return nil, reply.Err
		}
		return &llm.Completion{
			Content:          reply.Content,
			Model:            payload.Model.String(),
			PromptTokens:     reply.PromptTokens,
			CompletionTokens: reply.CompletionTokens,
		}, nil
	}
	return nil, fmt.Errorf("llmtest: no route for system prompt %q", system)
}

// CallsFor returns how many requests matched the route key.
func (p *RoutedProvider) CallsFor(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[key]
}

var _ llm.Provider = (*RoutedProvider)(nil)
