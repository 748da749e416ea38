package mcp

import (
	"context"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	buildErr    error
	answer      *domain.Answer
	answerErr   error
	retrieval   domain.RetrievalResult
	retrieveErr error
	respondText string
	state       domain.PipelineState
	err         error
	stats       *domain.IndexStats

	lastQuestion string
	lastK        int
	answerCalls  int
}

func (m *mockAnswerService) Build(_ context.Context) error {
	return m.buildErr
}

func (m *mockAnswerService) Answer(_ context.Context, question string) (*domain.Answer, error) {
	m.lastQuestion = question
	m.answerCalls++
	return m.answer, m.answerErr
}

func (m *mockAnswerService) Retrieve(_ context.Context, question string, k int) (domain.RetrievalResult, error) {
	m.lastQuestion = question
	m.lastK = k
	return m.retrieval, m.retrieveErr
}

func (m *mockAnswerService) Respond(_ context.Context, _ string) string {
	return m.respondText
}

func (m *mockAnswerService) State() domain.PipelineState {
	return m.state
}

func (m *mockAnswerService) Err() error {
	return m.err
}

func (m *mockAnswerService) Stats() *domain.IndexStats {
	return m.stats
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.Settings) error {
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}
