package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/conversation/repository"
	"timesheet-assistant/internal/conversation/repository/memory"
	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/submission"
	pkgLog "timesheet-assistant/pkg/log"
)

var testNow = time.Date(2024, 8, 5, 9, 30, 0, 0, time.UTC)

type staticOptions struct{}

func (staticOptions) Options(ctx context.Context) dialogue.Options {
	return dialogue.Options{
		Matters:       []string{"Acme Corp"},
		CostCentres:   []string{"Litigation"},
		BusinessAreas: []string{"Operations"},
		Subcategories: []string{"Training"},
	}
}

type mockGenerator struct {
	replies  []string
	err      error
	calls    int
	lastSeen []model.Turn
}

func (m *mockGenerator) Generate(ctx context.Context, history []model.Turn) (string, error) {
	m.calls++
	m.lastSeen = append([]model.Turn(nil), history...)
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "Tell me more.", nil
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	return r, nil
}

type mockDispatcher struct {
	mu      sync.Mutex
	entries []model.TimeEntry
	scopes  []model.Scope
}

func (m *mockDispatcher) Dispatch(ctx context.Context, sc model.Scope, entry model.TimeEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	m.scopes = append(m.scopes, sc)
}

// flakyRepo fails Save while failSave is set.
type flakyRepo struct {
	repository.SessionRepository
	failSave error
}

func (r *flakyRepo) Save(ctx context.Context, s conversation.Session) error {
	if r.failSave != nil {
		return r.failSave
	}
	return r.SessionRepository.Save(ctx, s)
}

type mockPinger struct {
	out submission.Outcome
	err error
}

func (m *mockPinger) Ping(ctx context.Context) (submission.Outcome, error) {
	return m.out, m.err
}

type testEnv struct {
	uc         *implUseCase
	repo       *flakyRepo
	generator  *mockGenerator
	dispatcher *mockDispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gen := &mockGenerator{}
	disp := &mockDispatcher{}
	repo := &flakyRepo{SessionRepository: memory.New(100, time.Hour, nil)}
	uc := New(pkgLog.NewNop(), Deps{
		Repo:       repo,
		Options:    staticOptions{},
		Generator:  gen,
		Dispatcher: disp,
		Pinger:     &mockPinger{out: submission.Outcome{Status: submission.StatusDelivered, Attempts: 1}},
		Now:        func() time.Time { return testNow },
	}).(*implUseCase)
	return &testEnv{uc: uc, repo: repo, generator: gen, dispatcher: disp}
}

var alice = model.Scope{UserID: "alice", Username: "Alice", Email: "alice@example.com"}

func (e *testEnv) start(t *testing.T, id string, mode conversation.Mode) {
	t.Helper()
	if _, err := e.uc.Start(context.Background(), alice, conversation.StartInput{SessionID: id, Mode: mode}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
}

func (e *testEnv) say(t *testing.T, id string, texts ...string) conversation.Reply {
	t.Helper()
	var r conversation.Reply
	for _, text := range texts {
		var err error
		r, err = e.uc.HandleMessage(context.Background(), alice, conversation.MessageInput{SessionID: id, Text: text})
		if err != nil {
			t.Fatalf("HandleMessage(%q) error = %v", text, err)
		}
	}
	return r
}
