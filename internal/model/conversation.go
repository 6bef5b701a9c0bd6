// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for solutions and conversations.
package model

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Conversation is an in-memory transcript. Nothing is persisted.
type Conversation struct {
	ID        string
	Title     string
	CreatedAt time.Time

	mu       sync.RWMutex
	messages []*Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        uuid.NewString(),
		Title:     "New Conversation",
		CreatedAt: time.Now(),
	}
}

// NewDiagnosticConversation builds the transcript shown by the TUI: the user's
// question followed by an assistant reply carrying the solution list.
func NewDiagnosticConversation(question string, solutions []Solution) *Conversation {
	c := NewConversation()
	c.AddUserMessage(question)
	c.AddMessage(NewAssistantMessage(SampleIntro(len(solutions)), solutions))
	return c
}

// AddMessage appends a message to the conversation.
func (c *Conversation) AddMessage(msg *Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	if msg.Role == RoleUser && c.Title == "New Conversation" {
		c.Title = msg.Preview(50)
	}
}

// AddUserMessage creates and appends a user message.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// Messages returns a copy of the message slice.
func (c *Conversation) Messages() []*Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastSolutions returns the solutions of the most recent assistant message
// that carries any.
func (c *Conversation) LastSolutions() []Solution {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].HasSolutions() {
			return c.messages[i].Solutions
		}
	}
	return nil
}
