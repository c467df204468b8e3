package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/repository/memory"
	"github.com/tailkeep-lab/tailkeep/pkg/usecase"
)

const testProfileID = types.ProfileID("profile-1")

// failingReasoning always errors, simulating an unreachable remote
// service
type failingReasoning struct{}

func (c *failingReasoning) Query(_ context.Context, _ string, _ *model.AssistantContext, _ []model.ArchivedMessage) (*interfaces.ReasoningReply, error) {
	return nil, goerr.New("connection refused")
}

// recordingReasoning returns a fixed reply and records the history
// window it was given
type recordingReasoning struct {
	lastHistoryLen int
	reply          *interfaces.ReasoningReply
}

func (c *recordingReasoning) Query(_ context.Context, _ string, _ *model.AssistantContext, history []model.ArchivedMessage) (*interfaces.ReasoningReply, error) {
	c.lastHistoryLen = len(history)
	return c.reply, nil
}

// brokenConversations fails every operation, simulating a storage-layer
// outage on the conversation archive
type brokenConversations struct{}

func (r *brokenConversations) Load(_ context.Context, _ types.ProfileID) ([]model.ArchivedMessage, error) {
	return nil, goerr.New("archive unavailable")
}

func (r *brokenConversations) Save(_ context.Context, _ types.ProfileID, _ []model.ArchivedMessage) error {
	return goerr.New("archive unavailable")
}

func (r *brokenConversations) Delete(_ context.Context, _ types.ProfileID) error {
	return goerr.New("archive unavailable")
}

// brokenArchiveRepo is a working repository whose conversation archive
// is down
type brokenArchiveRepo struct {
	*memory.Memory
	conversations brokenConversations
}

func (r *brokenArchiveRepo) Conversation() interfaces.ConversationRepository {
	return &r.conversations
}

func seedPet(t *testing.T, repo *memory.Memory, name string, age float64) *model.Pet {
	t.Helper()
	now := time.Now().UTC()
	pet := &model.Pet{
		ID:        types.NewPetID(),
		Name:      name,
		Type:      "dog",
		ApproxAge: age,
		CreatedAt: now,
		UpdatedAt: now,
	}
	gt.NoError(t, repo.Pet().Put(context.Background(), pet)).Required()
	return pet
}

func TestAssistantSession_SendMessage(t *testing.T) {
	t.Run("remote reply is used when available", func(t *testing.T) {
		repo := memory.New()
		remote := &recordingReasoning{
			reply: &interfaces.ReasoningReply{
				Message: "Remote answer",
				Actions: []model.RawAction{{Type: "view_tips", Label: "Tips"}},
			},
		}
		uc := usecase.New(repo, usecase.WithReasoning(remote))
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "hello", "")
		gt.NoError(t, err).Required()

		gt.Value(t, resp.Message).Equal("Remote answer")
		gt.Number(t, len(resp.SuggestedActions)).Equal(1)
		gt.Value(t, resp.SuggestedActions[0].Type).Equal(types.ActionViewTips)
	})

	t.Run("always responds when remote fails", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithReasoning(&failingReasoning{}))
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		for _, msg := range []string{
			"hello",
			"my dog is sick",
			"what should I feed a kitten",
			"",
			strings.Repeat("x", 10000),
		} {
			resp, err := session.SendMessage(ctx, msg, "")
			gt.NoError(t, err).Required()
			gt.Value(t, resp.Message).NotEqual("")
			gt.Value(t, resp.SuggestedActions).NotNil()
		}
	})

	t.Run("no reasoning client resolves locally", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "hi there", "")
		gt.NoError(t, err).Required()
		gt.Value(t, resp.Message).NotEqual("")
	})

	t.Run("conversation length counts both sides", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		_, err := session.SendMessage(ctx, "first", "")
		gt.NoError(t, err).Required()
		_, err = session.SendMessage(ctx, "second", "")
		gt.NoError(t, err).Required()

		gt.Number(t, session.ConversationLength()).Equal(4)

		history := session.History()
		gt.Number(t, len(history)).Equal(4)
		gt.Value(t, history[0].IsUser).Equal(true)
		gt.Value(t, history[0].Content).Equal("first")
		gt.Value(t, history[1].IsUser).Equal(false)
	})
}

func TestAssistantSession_HistoryBounds(t *testing.T) {
	t.Run("remote window capped at 20", func(t *testing.T) {
		repo := memory.New()
		remote := &recordingReasoning{
			reply: &interfaces.ReasoningReply{Message: "ok"},
		}
		uc := usecase.New(repo, usecase.WithReasoning(remote))
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		for i := 0; i < 30; i++ {
			_, err := session.SendMessage(ctx, fmt.Sprintf("message %d", i), "")
			gt.NoError(t, err).Required()
		}

		// 30 exchanges put 60 messages in history; the remote still only
		// sees the window
		gt.Number(t, session.ConversationLength()).Equal(60)
		gt.Number(t, remote.lastHistoryLen).Equal(20)
	})

	t.Run("persisted archive capped at 50", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		for i := 0; i < 40; i++ {
			_, err := session.SendMessage(ctx, fmt.Sprintf("message %d", i), "")
			gt.NoError(t, err).Required()
		}

		archived, err := repo.Conversation().Load(ctx, testProfileID)
		gt.NoError(t, err).Required()
		gt.Number(t, len(archived)).Equal(50)

		// The tail is the newest messages; the last archived entry is the
		// assistant reply to the final message
		gt.Value(t, archived[len(archived)-1].IsUser).Equal("false")
	})

	t.Run("short conversations persist in full", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		_, err := session.SendMessage(ctx, "only one", "")
		gt.NoError(t, err).Required()

		archived, err := repo.Conversation().Load(ctx, testProfileID)
		gt.NoError(t, err).Required()
		gt.Number(t, len(archived)).Equal(2)
		gt.Value(t, archived[0].Content).Equal("only one")
		gt.Value(t, archived[0].IsUser).Equal("true")
	})
}

func TestAssistantSession_Restore(t *testing.T) {
	t.Run("history survives session recreation", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		uc1 := usecase.New(repo)
		session1 := uc1.Assistant(ctx, testProfileID)
		_, err := session1.SendMessage(ctx, "remember this", "")
		gt.NoError(t, err).Required()

		// A fresh use case stack over the same repository restores the
		// archived conversation
		uc2 := usecase.New(repo)
		session2 := uc2.Assistant(ctx, testProfileID)
		gt.Number(t, session2.ConversationLength()).Equal(2)

		history := session2.History()
		gt.Value(t, history[0].Content).Equal("remember this")
		gt.Value(t, history[0].IsUser).Equal(true)
	})

	t.Run("sessions are cached per profile", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		a := uc.Assistant(ctx, "profile-a")
		b := uc.Assistant(ctx, "profile-a")
		c := uc.Assistant(ctx, "profile-b")

		gt.Value(t, a == b).Equal(true)
		gt.Value(t, a == c).Equal(false)
	})

	t.Run("profiles are isolated", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		sessionA := uc.Assistant(ctx, "profile-a")
		_, err := sessionA.SendMessage(ctx, "for A only", "")
		gt.NoError(t, err).Required()

		sessionB := uc.Assistant(ctx, "profile-b")
		gt.Number(t, sessionB.ConversationLength()).Equal(0)
	})
}

func TestAssistantSession_ArchiveOutage(t *testing.T) {
	t.Run("failing archive load starts the conversation empty", func(t *testing.T) {
		repo := &brokenArchiveRepo{Memory: memory.New()}
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		gt.Number(t, session.ConversationLength()).Equal(0)
	})

	t.Run("conversation continues in memory when saves fail", func(t *testing.T) {
		repo := &brokenArchiveRepo{Memory: memory.New()}
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "still there?", "")
		gt.NoError(t, err).Required()
		gt.Value(t, resp.Message).NotEqual("")

		// Persistence is best-effort; the in-memory history keeps growing
		gt.Number(t, session.ConversationLength()).Equal(2)

		_, err = session.SendMessage(ctx, "one more", "")
		gt.NoError(t, err).Required()
		gt.Number(t, session.ConversationLength()).Equal(4)
	})

	t.Run("failing archive delete surfaces from reset", func(t *testing.T) {
		repo := &brokenArchiveRepo{Memory: memory.New()}
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		gt.Value(t, session.ResetConversation(ctx)).NotNil()
	})
}

func TestAssistantSession_Reset(t *testing.T) {
	t.Run("reset clears memory and storage", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		_, err := session.SendMessage(ctx, "to be forgotten", "")
		gt.NoError(t, err).Required()

		gt.NoError(t, session.ResetConversation(ctx)).Required()
		gt.Number(t, session.ConversationLength()).Equal(0)

		archived, err := repo.Conversation().Load(ctx, testProfileID)
		gt.NoError(t, err).Required()
		gt.Number(t, len(archived)).Equal(0)
	})

	t.Run("reset on empty conversation succeeds", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		gt.NoError(t, session.ResetConversation(ctx))
		gt.NoError(t, session.ResetConversation(ctx))
		gt.Number(t, session.ConversationLength()).Equal(0)
	})

	t.Run("conversation continues after reset", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		_, err := session.SendMessage(ctx, "before", "")
		gt.NoError(t, err).Required()
		gt.NoError(t, session.ResetConversation(ctx)).Required()

		_, err = session.SendMessage(ctx, "after", "")
		gt.NoError(t, err).Required()
		gt.Number(t, session.ConversationLength()).Equal(2)
		gt.Value(t, session.History()[0].Content).Equal("after")
	})
}

func TestAssistantSession_Fallback(t *testing.T) {
	t.Run("emergency message with remote down", func(t *testing.T) {
		repo := memory.New()
		seedPet(t, repo, "Rex", 4)
		uc := usecase.New(repo, usecase.WithReasoning(&failingReasoning{}))
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "Is Rex okay? He seems to be bleeding", "")
		gt.NoError(t, err).Required()

		gt.Value(t, strings.Contains(strings.ToLower(resp.Message), "emergency")).Equal(true)

		foundEmergencyVet := false
		for _, action := range resp.SuggestedActions {
			if action.Type == types.ActionEmergencyVet {
				foundEmergencyVet = true
			}
		}
		gt.Value(t, foundEmergencyVet).Equal(true)
	})

	t.Run("oldest pet question answered from context", func(t *testing.T) {
		repo := memory.New()
		seedPet(t, repo, "Mia", 12)
		seedPet(t, repo, "Tom", 1)
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "which of my pets is the oldest?", "")
		gt.NoError(t, err).Required()

		gt.Value(t, strings.Contains(resp.Message, "Mia")).Equal(true)
		gt.Value(t, strings.Contains(resp.Message, "oldest")).Equal(true)
		gt.Value(t, strings.Contains(resp.Message, "12 years old")).Equal(true)
	})

	t.Run("youngest pet question answered from context", func(t *testing.T) {
		repo := memory.New()
		seedPet(t, repo, "Mia", 12)
		seedPet(t, repo, "Tom", 1)
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "and the youngest?", "")
		gt.NoError(t, err).Required()

		gt.Value(t, strings.Contains(resp.Message, "Tom")).Equal(true)
		gt.Value(t, strings.Contains(resp.Message, "1 year old")).Equal(true)
	})

	t.Run("age under a year rendered in months", func(t *testing.T) {
		repo := memory.New()
		seedPet(t, repo, "Pip", 0.5)
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "how old is my youngest pet?", "")
		gt.NoError(t, err).Required()

		gt.Value(t, strings.Contains(resp.Message, "6 months old")).Equal(true)
	})

	t.Run("age just under a year rolls over to one year", func(t *testing.T) {
		repo := memory.New()
		seedPet(t, repo, "Nora", 0.99)
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "how old is my youngest pet?", "")
		gt.NoError(t, err).Required()

		// 0.99 years is 12 months when rounded; render it as a year, not
		// "12 months old"
		gt.Value(t, strings.Contains(resp.Message, "1 year old")).Equal(true)
	})

	t.Run("greeting enumerates pet names", func(t *testing.T) {
		repo := memory.New()
		seedPet(t, repo, "Mia", 3)
		seedPet(t, repo, "Tom", 2)
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "good morning", "")
		gt.NoError(t, err).Required()

		gt.Value(t, strings.Contains(resp.Message, "Mia")).Equal(true)
		gt.Value(t, strings.Contains(resp.Message, "Tom")).Equal(true)
	})

	t.Run("exercise question uses guidelines per pet", func(t *testing.T) {
		repo := memory.New()
		seedPet(t, repo, "Rex", 4)
		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "how much exercise does Rex need", "")
		gt.NoError(t, err).Required()

		gt.Value(t, strings.Contains(resp.Message, "Rex")).Equal(true)
		gt.Value(t, strings.Contains(resp.Message, "30-60 minutes")).Equal(true)
	})

	t.Run("selected pet health history is surfaced", func(t *testing.T) {
		repo := memory.New()
		pet := seedPet(t, repo, "Mia", 5)
		pet.HealthIssues = model.StringList{"arthritis"}
		gt.NoError(t, repo.Pet().Put(context.Background(), pet)).Required()

		uc := usecase.New(repo)
		ctx := context.Background()

		session := uc.Assistant(ctx, testProfileID)
		resp, err := session.SendMessage(ctx, "Mia seems to be in pain", pet.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, strings.Contains(resp.Message, "arthritis")).Equal(true)
	})
}
