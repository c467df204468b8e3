package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/service/export"
	"github.com/tailkeep-lab/tailkeep/pkg/service/petcontext"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/logging"
)

const (
	// sendWindowCap bounds the history slice sent to the remote
	// reasoning service. Independent from archiveCap: the remote
	// contract may depend on this smaller window to bound payload size.
	sendWindowCap = 20

	// archiveCap bounds the persisted conversation archive
	archiveCap = 50
)

// AssistantSession is the conversational facade for one profile. Each
// profile gets its own session object with its own history, so
// independent sessions coexist and can be tested without shared state.
//
// Remote reasoning is best-effort: any failure on that path falls back
// to the local intent classifier and response generator. No error from
// SendMessage ever reaches the caller; the only operation allowed to
// fail is ResetConversation's storage clear.
type AssistantSession struct {
	profileID types.ProfileID
	repo      interfaces.Repository
	assembler *petcontext.Assembler
	reasoning interfaces.ReasoningClient // may be nil: always fall back
	fallback  *fallbackGenerator
	exporter  *export.Service // may be nil: reset skips archiving

	mu      sync.Mutex
	history []*model.Message
}

// NewAssistantSession creates a session and restores its history from
// the durable archive. A missing, corrupt, or unreadable archive starts
// the conversation empty; construction never fails on archive state.
func NewAssistantSession(ctx context.Context, profileID types.ProfileID, repo interfaces.Repository, assembler *petcontext.Assembler, reasoning interfaces.ReasoningClient, fallback *fallbackGenerator, exporter *export.Service) *AssistantSession {
	s := &AssistantSession{
		profileID: profileID,
		repo:      repo,
		assembler: assembler,
		reasoning: reasoning,
		fallback:  fallback,
		exporter:  exporter,
	}

	archived, err := repo.Conversation().Load(ctx, profileID)
	if err != nil {
		logging.From(ctx).Warn("failed to load conversation archive, starting empty",
			"profile_id", profileID.String(), "error", err.Error())
		return s
	}
	for _, a := range archived {
		s.history = append(s.history, model.FromArchived(a))
	}

	return s
}

// SendMessage processes one user message and always resolves with a
// response. selectedPet marks the pet currently focused by the caller
// and may be empty.
func (s *AssistantSession) SendMessage(ctx context.Context, text string, selectedPet types.PetID) (*model.AssistantResponse, error) {
	logger := logging.From(ctx)

	s.append(ctx, model.NewMessage(text, true))

	// The context snapshot is rebuilt on every call; pet and task data
	// may have changed since the previous message.
	pets, err := s.repo.Pet().List(ctx)
	if err != nil {
		logger.Warn("failed to list pets, degrading to empty roster", "error", err.Error())
		pets = nil
	}
	assistantCtx := s.assembler.Build(ctx, pets, selectedPet)

	replyText, rawActions := s.resolve(ctx, text, assistantCtx)

	response := &model.AssistantResponse{
		Message:          replyText,
		SuggestedActions: NormalizeActions(rawActions),
	}

	s.append(ctx, model.NewMessage(response.Message, false))

	return response, nil
}

// resolve tries the remote reasoning path and falls back to the local
// generator on any failure
func (s *AssistantSession) resolve(ctx context.Context, text string, assistantCtx *model.AssistantContext) (string, []model.RawAction) {
	logger := logging.From(ctx)

	if s.reasoning != nil {
		reply, err := s.reasoning.Query(ctx, text, assistantCtx, s.windowForRemote())
		if err == nil {
			return reply.Message, reply.Actions
		}
		logger.Warn("remote reasoning failed, using local fallback", "error", err.Error())
	}

	intent := ClassifyIntent(text)
	logger.Debug("local fallback classification", "intent", intent.String())
	return s.fallback.Generate(text, intent, assistantCtx)
}

// ResetConversation clears in-memory history and deletes the durable
// record entirely. When an exporter is configured the archive is
// snapshotted first, best-effort. A failing storage delete propagates:
// it indicates a deeper storage-layer fault the caller should see.
func (s *AssistantSession) ResetConversation(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exporter != nil && len(s.history) > 0 {
		if name, err := s.exporter.Archive(ctx, s.profileID, s.archivedTail()); err != nil {
			logging.From(ctx).Warn("failed to export conversation before reset",
				"profile_id", s.profileID.String(), "error", err.Error())
		} else {
			logging.From(ctx).Info("conversation exported", "object", name)
		}
	}

	s.history = nil

	if err := s.repo.Conversation().Delete(ctx, s.profileID); err != nil {
		return goerr.Wrap(err, "failed to clear conversation archive",
			goerr.V("profile_id", s.profileID))
	}
	return nil
}

// ConversationLength returns the observable message count
func (s *AssistantSession) ConversationLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// History returns a copy of the in-memory conversation
func (s *AssistantSession) History() []*model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*model.Message, len(s.history))
	copy(result, s.history)
	return result
}

// append pushes a message and persists the capped archive tail. The
// durable write happens on every append, not batched: a crash loses at
// most the last unpersisted message. Write failures are logged, not
// surfaced; the conversation continues in memory.
func (s *AssistantSession) append(ctx context.Context, msg *model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, msg)

	if err := s.repo.Conversation().Save(ctx, s.profileID, s.archivedTail()); err != nil {
		logging.From(ctx).Error("failed to persist conversation archive",
			"profile_id", s.profileID.String(), "error", err.Error())
	}
}

// archivedTail returns the last archiveCap messages in persistence form.
// Callers must hold s.mu.
func (s *AssistantSession) archivedTail() []model.ArchivedMessage {
	start := 0
	if len(s.history) > archiveCap {
		start = len(s.history) - archiveCap
	}

	tail := make([]model.ArchivedMessage, 0, len(s.history)-start)
	for _, msg := range s.history[start:] {
		tail = append(tail, msg.ToArchived())
	}
	return tail
}

// windowForRemote returns the last sendWindowCap messages in wire form,
// oldest first
func (s *AssistantSession) windowForRemote() []model.ArchivedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if len(s.history) > sendWindowCap {
		start = len(s.history) - sendWindowCap
	}

	window := make([]model.ArchivedMessage, 0, len(s.history)-start)
	for _, msg := range s.history[start:] {
		window = append(window, msg.ToArchived())
	}
	return window
}
