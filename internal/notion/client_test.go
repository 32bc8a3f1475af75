package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visionnaires-go/internal/model"
)

func TestQueryDatabaseSendsSortsAndHeaders(t *testing.T) {
	var got QueryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/databases/db-1/query", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, DefaultVersion, r.Header.Get("Notion-Version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"object":"list","results":[{"object":"page","id":"p1","properties":{}}],"has_more":true,"next_cursor":"c2"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", "", srv.Client())
	resp, err := client.QueryDatabase(context.Background(), "db-1", QueryRequest{
		Sorts: []Sort{{Property: "Order", Direction: "ascending"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []Sort{{Property: "Order", Direction: "ascending"}}, got.Sorts)
	assert.Equal(t, pageSize, got.PageSize)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "p1", resp.Results[0].ID)
	assert.True(t, resp.HasMore)
	assert.Equal(t, "c2", resp.NextCursor)
}

func TestRetrievePageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","status":404,"code":"object_not_found","message":"Could not find page"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", "", srv.Client()).RetrievePage(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAPIErrorDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"object":"error","status":400,"code":"validation_error","message":"Email is not a property"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", "", srv.Client()).CreatePage(context.Background(), "db", map[string]model.Property{
		"Email": model.TitleProperty("a@b.com"),
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestCreatePagePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.JSONEq(t, `{"database_id":"capture"}`, string(payload["parent"]))
		assert.JSONEq(t, `{"Email":{"type":"title","title":[{"type":"text","text":{"content":"a@b.com"}}]}}`, string(payload["properties"]))
		_, _ = w.Write([]byte(`{"object":"page","id":"new-page","properties":{}}`))
	}))
	defer srv.Close()

	rec, err := NewClient(srv.URL, "k", "", srv.Client()).CreatePage(context.Background(), "capture", map[string]model.Property{
		"Email": model.TitleProperty("a@b.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new-page", rec.ID)
}

func TestListBlockChildrenCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blocks/page-1/children", r.URL.Path)
		assert.Equal(t, "c9", r.URL.Query().Get("start_cursor"))
		_, _ = w.Write([]byte(`{"results":[{"id":"b1","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"hi"}]}}],"has_more":false,"next_cursor":null}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "k", "", srv.Client()).ListBlockChildren(context.Background(), "page-1", "c9")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "hi", resp.Results[0].PlainText())
	assert.False(t, resp.HasMore)
}
