package action

import (
	"context"
	"errors"
	"testing"

	"github.com/calebmh/mnemo/internal/domain"
	"github.com/calebmh/mnemo/internal/hoststore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func exchange() []domain.Message {
	return []domain.Message{
		{Role: "user", Content: "What's a good tea for mornings?"},
		{Role: "assistant", Content: "Try a strong Assam."},
	}
}

func TestSaveStoresExchange(t *testing.T) {
	store := hoststore.NewMock()
	a := NewSaveAction(store, Options{Enabled: true, ShowStatus: true}, zap.NewNop())

	events := &domain.EventBuffer{}
	mem, err := a.Save(context.Background(), "user-1", exchange(), events)
	require.NoError(t, err)
	require.NotNil(t, mem)

	want := "User: What's a good tea for mornings?\nAssistant: Try a strong Assam."
	assert.Equal(t, want, mem.Content)
	require.Len(t, store.AddCalls, 1)
	assert.Equal(t, want, store.AddCalls[0])

	evs := events.Events()
	require.NotEmpty(t, evs)
	assert.Equal(t, "Memory Saved", evs[len(evs)-1].Data["description"])
	assert.Equal(t, true, evs[len(evs)-1].Data["done"])
}

func TestSaveUsesLatestExchange(t *testing.T) {
	store := hoststore.NewMock()
	a := NewSaveAction(store, Options{Enabled: true}, zap.NewNop())

	messages := append([]domain.Message{
		{Role: "user", Content: "old question"},
		{Role: "assistant", Content: "old answer"},
	}, exchange()...)

	mem, err := a.Save(context.Background(), "user-1", messages, nil)
	require.NoError(t, err)
	assert.NotContains(t, mem.Content, "old question")
	assert.Contains(t, mem.Content, "Try a strong Assam.")
}

func TestSaveDisabled(t *testing.T) {
	store := hoststore.NewMock()
	a := NewSaveAction(store, Options{Enabled: false}, zap.NewNop())

	_, err := a.Save(context.Background(), "user-1", exchange(), nil)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Zero(t, store.Mutations())
}

func TestSaveNeedsExchange(t *testing.T) {
	store := hoststore.NewMock()
	a := NewSaveAction(store, Options{Enabled: true}, zap.NewNop())

	_, err := a.Save(context.Background(), "user-1", []domain.Message{{Role: "user", Content: "hi"}}, nil)
	assert.ErrorIs(t, err, ErrNoExchange)
	assert.Zero(t, store.Mutations())
}

func TestSaveStorageFailure(t *testing.T) {
	store := hoststore.NewMock()
	store.Err = errors.New("backend down")
	a := NewSaveAction(store, Options{Enabled: true, ShowStatus: true}, zap.NewNop())

	events := &domain.EventBuffer{}
	_, err := a.Save(context.Background(), "user-1", exchange(), events)

	var se *domain.StorageError
	require.ErrorAs(t, err, &se)

	// Error status plus a citation carrying the failure detail.
	evs := events.Events()
	var sawCitation bool
	for _, e := range evs {
		if e.Type == domain.EventCitation {
			sawCitation = true
		}
	}
	assert.True(t, sawCitation, "expected an error citation event")
}
