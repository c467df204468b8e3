package model

import (
	"time"

	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
)

// Message is a single conversation entry. Messages are immutable once
// created; identity is the ID generated at creation time.
type Message struct {
	ID        types.MessageID
	Content   string
	IsUser    bool
	Timestamp time.Time
}

// NewMessage creates a Message with a fresh ID and the current timestamp
func NewMessage(content string, isUser bool) *Message {
	return &Message{
		ID:        types.NewMessageID(),
		Content:   content,
		IsUser:    isUser,
		Timestamp: time.Now().UTC(),
	}
}

// ArchivedMessage is the persistence/wire form of a Message. The remote
// reasoning contract expects the role flag serialized as the string
// "true"/"false" rather than a boolean, so the conversion lives here at
// the boundary and internal code keeps the bool.
type ArchivedMessage struct {
	Content string `json:"content" firestore:"content"`
	IsUser  string `json:"isUser" firestore:"is_user"`
}

// EncodeIsUser converts the internal role flag to its wire form
func EncodeIsUser(isUser bool) string {
	if isUser {
		return "true"
	}
	return "false"
}

// DecodeIsUser converts the wire role flag back to the internal bool
func DecodeIsUser(s string) bool {
	return s == "true"
}

// ToArchived converts a Message to its persistence form
func (m *Message) ToArchived() ArchivedMessage {
	return ArchivedMessage{
		Content: m.Content,
		IsUser:  EncodeIsUser(m.IsUser),
	}
}

// FromArchived rebuilds a Message from its persistence form. The original
// ID and timestamp are not archived; restored messages get fresh ones.
func FromArchived(a ArchivedMessage) *Message {
	return NewMessage(a.Content, DecodeIsUser(a.IsUser))
}
