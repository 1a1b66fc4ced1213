package hoststore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calebmh/mnemo/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAdd(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/memories", r.URL.Path)
		assert.Equal(t, "Bearer host-key", r.Header.Get("Authorization"))

		var req addRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user-1", req.Owner)
		assert.Equal(t, "User likes green tea", req.Content)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Memory{
			ID: id, Owner: req.Owner, Content: req.Content,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "host-key")
	mem, err := c.Add(context.Background(), "user-1", "User likes green tea")
	require.NoError(t, err)
	assert.Equal(t, id, mem.ID)
	assert.Equal(t, "User likes green tea", mem.Content)
}

func TestClientUpdate(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/memories/"+id.String(), r.URL.Path)

		var req updateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		_ = json.NewEncoder(w).Encode(domain.Memory{ID: id, Content: req.Content})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "host-key")
	mem, err := c.Update(context.Background(), id, "User prefers oolong")
	require.NoError(t, err)
	assert.Equal(t, "User prefers oolong", mem.Content)
}

func TestClientDelete(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/memories/"+id.String(), r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "host-key")
	require.NoError(t, c.Delete(context.Background(), id))
}

func TestClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/memories", r.URL.Path)
		assert.Equal(t, "user 1", r.URL.Query().Get("owner"))

		_ = json.NewEncoder(w).Encode([]domain.Memory{
			{ID: uuid.New(), Owner: "user 1", Content: "a"},
			{ID: uuid.New(), Owner: "user 1", Content: "b"},
		})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "host-key")
	memories, err := c.List(context.Background(), "user 1")
	require.NoError(t, err)
	assert.Len(t, memories, 2)
}

func TestClientWrapsFailuresAsStorageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "host-key")

	_, err := c.Add(context.Background(), "u", "c")
	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "add", se.Op)

	_, err = c.List(context.Background(), "u")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "list", se.Op)

	err = c.Delete(context.Background(), uuid.New())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "delete", se.Op)
}

func TestClientUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, "host-key")
	_, err := c.List(context.Background(), "u")

	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "list", se.Op)
}
