package usecase

import (
	"context"
	"sync"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/service/export"
	"github.com/tailkeep-lab/tailkeep/pkg/service/guideline"
	"github.com/tailkeep-lab/tailkeep/pkg/service/petcontext"
)

type UseCases struct {
	repo       interfaces.Repository
	reasoning  interfaces.ReasoningClient
	guidelines *guideline.Registry
	exporter   *export.Service
	assembler  *petcontext.Assembler
	fallback   *fallbackGenerator

	mu       sync.Mutex
	sessions map[types.ProfileID]*AssistantSession
}

type Option func(*UseCases)

// WithReasoning sets the remote reasoning client. Without one, every
// message resolves through the local fallback.
func WithReasoning(client interfaces.ReasoningClient) Option {
	return func(uc *UseCases) {
		uc.reasoning = client
	}
}

// WithGuidelines overrides the default care guideline registry
func WithGuidelines(reg *guideline.Registry) Option {
	return func(uc *UseCases) {
		uc.guidelines = reg
	}
}

// WithExporter enables conversation export before reset
func WithExporter(exporter *export.Service) Option {
	return func(uc *UseCases) {
		uc.exporter = exporter
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		sessions: make(map[types.ProfileID]*AssistantSession),
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.guidelines == nil {
		uc.guidelines = guideline.NewDefault()
	}
	uc.assembler = petcontext.New(repo.Task(), repo.Vaccination())
	uc.fallback = newFallbackGenerator(uc.guidelines)

	return uc
}

// Assistant returns the session for the profile, creating it (and
// restoring its archived history) on first use.
func (uc *UseCases) Assistant(ctx context.Context, profileID types.ProfileID) *AssistantSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if session, ok := uc.sessions[profileID]; ok {
		return session
	}

	session := NewAssistantSession(ctx, profileID, uc.repo, uc.assembler, uc.reasoning, uc.fallback, uc.exporter)
	uc.sessions[profileID] = session
	return session
}

// Notifications lists reminder notifications, newest first
func (uc *UseCases) Notifications(ctx context.Context, limit int) ([]*model.Notification, error) {
	return uc.repo.Notification().List(ctx, limit)
}
