// Package roleplay runs the scenario-driven conversation practice: user
// turns are checked for mistakes and hidden-target progress, the partner
// answers from a scripted sequence, and the transcript persists across
// page loads.
package roleplay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eugendimant/vivalingo/internal/content"
	"github.com/eugendimant/vivalingo/internal/mistakes"
	"github.com/eugendimant/vivalingo/internal/writing"
	"github.com/eugendimant/vivalingo/pkg/models"
)

// surfaced corrections per turn; more would drown the conversation
const maxCorrectionsPerTurn = 2

// ConversationStore is the slice of the conversation repository the engine needs
type ConversationStore interface {
	Create(ctx context.Context, c *models.Conversation) (int64, error)
	GetByID(ctx context.Context, profileID, id int64) (*models.Conversation, error)
	UpdateTranscript(ctx context.Context, profileID, id int64, messages, achievedTargets string) error
	Complete(ctx context.Context, profileID, id int64, feedback string) error
}

// MistakeLogger feeds detected errors into the error bank for later review
type MistakeLogger interface {
	Log(ctx context.Context, m *models.Mistake) (int64, error)
}

// Engine drives roleplay sessions
type Engine struct {
	detector      *mistakes.Detector
	conversations ConversationStore
	errorBank     MistakeLogger
}

// NewEngine creates a roleplay engine
func NewEngine(conversations ConversationStore, errorBank MistakeLogger) *Engine {
	return &Engine{
		detector:      mistakes.NewDetector(),
		conversations: conversations,
		errorBank:     errorBank,
	}
}

// Scenarios returns the built-in scenario bank
func (e *Engine) Scenarios() []content.Scenario {
	return content.ConversationScenarios
}

// Turn is the engine's reaction to one user message
type Turn struct {
	PartnerReply    string             `json:"partner_reply"`
	Corrections     []mistakes.Finding `json:"corrections,omitempty"`
	NewTargets      []string           `json:"new_targets,omitempty"` // hidden targets achieved this turn
	AchievedTargets []string           `json:"achieved_targets"`
	LanguageNudge   bool               `json:"language_nudge,omitempty"`
}

// Report is the closing summary of a conversation
type Report struct {
	ScenarioTitle   string   `json:"scenario_title"`
	AchievedTargets []string `json:"achieved_targets"`
	MissedTargets   []string `json:"missed_targets"`
	UserTurns       int      `json:"user_turns"`
	Corrections     int      `json:"corrections"`
	Feedback        string   `json:"feedback"`
}

// Start opens a conversation for a scenario and persists it with the
// partner's opening line.
func (e *Engine) Start(ctx context.Context, profileID int64, scenarioIndex int) (*models.Conversation, error) {
	if scenarioIndex < 0 || scenarioIndex >= len(content.ConversationScenarios) {
		return nil, fmt.Errorf("unknown scenario index %d", scenarioIndex)
	}
	scenario := content.ConversationScenarios[scenarioIndex]

	targets, err := json.Marshal(scenario.HiddenTargets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode hidden targets: %w", err)
	}
	messages, err := json.Marshal([]models.ConversationMessage{
		{Role: "partner", Content: scenario.Opening},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode opening message: %w", err)
	}

	conv := &models.Conversation{
		ProfileID:       profileID,
		ScenarioTitle:   scenario.Title,
		HiddenTargets:   string(targets),
		Messages:        string(messages),
		AchievedTargets: "[]",
	}
	id, err := e.conversations.Create(ctx, conv)
	if err != nil {
		return nil, err
	}
	conv.ID = id
	return conv, nil
}

// Respond processes one user turn: mistake check, hidden-target check,
// scripted partner reply, transcript update.
func (e *Engine) Respond(ctx context.Context, profileID, conversationID int64, userText string) (*Turn, error) {
	conv, err := e.conversations.GetByID(ctx, profileID, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation %d not found", conversationID)
	}
	if conv.Completed {
		return nil, fmt.Errorf("conversation %d is already finished", conversationID)
	}

	messages := conv.MessageList()
	userTurns := countUserTurns(messages)

	findings := e.detector.Check(userText)
	surfaced := findings
	if len(surfaced) > maxCorrectionsPerTurn {
		surfaced = surfaced[:maxCorrectionsPerTurn]
	}
	e.logFindings(ctx, profileID, userText, findings)

	achieved := decodeList(conv.AchievedTargets)
	var newTargets []string
	results := writing.AnalyzeConstraints(userText, conv.HiddenTargetList())
	for target, res := range results {
		if res.Met && res.Note == "" && !contains(achieved, target) {
			achieved = append(achieved, target)
			newTargets = append(newTargets, target)
		}
	}

	turn := &Turn{
		Corrections:     surfaced,
		NewTargets:      newTargets,
		AchievedTargets: achieved,
	}

	lang, _ := writing.DetectLanguage(userText)
	if lang == "english" {
		turn.PartnerReply = "Perdona, no te sigo en ingles. Me lo puedes decir en espanol?"
		turn.LanguageNudge = true
	} else {
		turn.PartnerReply = partnerReply(userTurns)
	}

	var corrections []string
	for _, f := range surfaced {
		corrections = append(corrections, fmt.Sprintf("%s -> %s", f.Original, f.Correction))
	}
	messages = append(messages,
		models.ConversationMessage{Role: "user", Content: userText, Corrections: corrections},
		models.ConversationMessage{Role: "partner", Content: turn.PartnerReply},
	)

	encodedMessages, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript: %w", err)
	}
	encodedTargets, err := json.Marshal(achieved)
	if err != nil {
		return nil, fmt.Errorf("failed to encode achieved targets: %w", err)
	}
	if err := e.conversations.UpdateTranscript(ctx, profileID, conversationID, string(encodedMessages), string(encodedTargets)); err != nil {
		return nil, err
	}
	return turn, nil
}

// Finish closes the conversation and produces the summary report
func (e *Engine) Finish(ctx context.Context, profileID, conversationID int64) (*Report, error) {
	conv, err := e.conversations.GetByID(ctx, profileID, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation %d not found", conversationID)
	}

	achieved := decodeList(conv.AchievedTargets)
	var missed []string
	for _, target := range conv.HiddenTargetList() {
		if !contains(achieved, target) {
			missed = append(missed, target)
		}
	}

	messages := conv.MessageList()
	corrections := 0
	for _, m := range messages {
		corrections += len(m.Corrections)
	}

	report := &Report{
		ScenarioTitle:   conv.ScenarioTitle,
		AchievedTargets: achieved,
		MissedTargets:   missed,
		UserTurns:       countUserTurns(messages),
		Corrections:     corrections,
		Feedback:        buildFeedback(achieved, missed, corrections),
	}

	if err := e.conversations.Complete(ctx, profileID, conversationID, report.Feedback); err != nil {
		return nil, err
	}
	return report, nil
}

func (e *Engine) logFindings(ctx context.Context, profileID int64, userText string, findings []mistakes.Finding) {
	if e.errorBank == nil {
		return
	}
	for _, f := range findings {
		examples, _ := json.Marshal(f.Examples)
		// detector misses are worth reviewing but the conversation goes on
		_, _ = e.errorBank.Log(ctx, &models.Mistake{
			ProfileID:     profileID,
			UserText:      f.Original,
			CorrectedText: f.Correction,
			ErrorType:     "conversation",
			ErrorTag:      f.Tag,
			Pattern:       f.Original,
			Explanation:   f.Explanation,
			Examples:      string(examples),
			Confidence:    0.8,
		})
	}
}

func buildFeedback(achieved, missed []string, corrections int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objetivos logrados: %d de %d.", len(achieved), len(achieved)+len(missed))
	if len(missed) > 0 {
		b.WriteString(" Pendientes: ")
		b.WriteString(strings.Join(missed, " "))
	}
	if corrections == 0 {
		b.WriteString(" Sin errores detectados, buen trabajo.")
	} else {
		fmt.Fprintf(&b, " Errores senalados: %d, repasalos en el banco de errores.", corrections)
	}
	return b.String()
}

func partnerReply(userTurns int) string {
	if userTurns >= len(content.PartnerResponses) {
		return content.PartnerResponses[len(content.PartnerResponses)-1]
	}
	return content.PartnerResponses[userTurns]
}

func countUserTurns(messages []models.ConversationMessage) int {
	n := 0
	for _, m := range messages {
		if m.Role == "user" {
			n++
		}
	}
	return n
}

func decodeList(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
