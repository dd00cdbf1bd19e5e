package models

import "encoding/json"

// ConversationMessage is one turn of a roleplay dialogue
type ConversationMessage struct {
	Role        string   `json:"role"` // user / partner
	Content     string   `json:"content"`
	Corrections []string `json:"corrections,omitempty"`
}

// Conversation is a persisted roleplay session
type Conversation struct {
	ID              int64  `json:"id" db:"id"`
	ProfileID       int64  `json:"profile_id" db:"profile_id"`
	ScenarioTitle   string `json:"scenario_title" db:"scenario_title"`
	HiddenTargets   string `json:"hidden_targets" db:"hidden_targets"`     // JSON-encoded list
	Messages        string `json:"messages" db:"messages"`                 // JSON-encoded []ConversationMessage
	AchievedTargets string `json:"achieved_targets" db:"achieved_targets"` // JSON-encoded list
	Feedback        string `json:"feedback" db:"feedback"`
	Completed       bool   `json:"completed" db:"completed"`
	CreatedAt       string `json:"created_at" db:"created_at"`
}

// HiddenTargetList decodes the scenario's hidden targets.
func (c *Conversation) HiddenTargetList() []string {
	var out []string
	if err := json.Unmarshal([]byte(c.HiddenTargets), &out); err != nil {
		return nil
	}
	return out
}

// AchievedTargetList decodes the targets achieved so far.
func (c *Conversation) AchievedTargetList() []string {
	var out []string
	if err := json.Unmarshal([]byte(c.AchievedTargets), &out); err != nil {
		return nil
	}
	return out
}

// MessageList decodes the stored dialogue.
func (c *Conversation) MessageList() []ConversationMessage {
	var out []ConversationMessage
	if err := json.Unmarshal([]byte(c.Messages), &out); err != nil {
		return nil
	}
	return out
}
