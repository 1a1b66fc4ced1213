package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/calebmh/mnemo/internal/action"
	"github.com/calebmh/mnemo/internal/hoststore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSaveHandler(store *hoststore.Mock, enabled bool) *SaveActionHandler {
	a := action.NewSaveAction(store, action.Options{Enabled: enabled, ShowStatus: true}, zap.NewNop())
	return NewSaveActionHandler(a)
}

func TestSaveActionHandler(t *testing.T) {
	store := hoststore.NewMock()
	h := newSaveHandler(store, true)

	body := `{"user_id":"u1","messages":[{"role":"user","content":"q"},{"role":"assistant","content":"a"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/actions/memory/save", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Save(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp saveActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Memory)
	assert.Equal(t, "User: q\nAssistant: a", resp.Memory.Content)
	assert.NotEmpty(t, resp.Events)
	require.Len(t, store.AddCalls, 1)
}

func TestSaveActionHandlerNoExchange(t *testing.T) {
	h := newSaveHandler(hoststore.NewMock(), true)

	body := `{"user_id":"u1","messages":[{"role":"user","content":"q"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/actions/memory/save", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Save(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveActionHandlerDisabled(t *testing.T) {
	store := hoststore.NewMock()
	h := newSaveHandler(store, false)

	body := `{"user_id":"u1","messages":[{"role":"user","content":"q"},{"role":"assistant","content":"a"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/actions/memory/save", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Save(rec, req)

	// Disabled is not a failure, just a no-op the host can surface.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, store.Mutations())
}

func TestSaveActionHandlerStorageFailure(t *testing.T) {
	store := hoststore.NewMock()
	store.Err = assert.AnError
	h := newSaveHandler(store, true)

	body := `{"user_id":"u1","messages":[{"role":"user","content":"q"},{"role":"assistant","content":"a"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/actions/memory/save", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Save(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp saveActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.NotEmpty(t, resp.Events, "failure events should reach the host")
}
