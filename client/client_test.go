package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fynex/netmodel/model"
)

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		require.Equal(t, "admin", r.URL.Query().Get("role"))
		require.Equal(t, "token abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`[{"id":1}]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithHeader("Authorization", "token abc"))
	resp, err := c.Get(context.Background(), "users", url.Values{"role": []string{"admin"}})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "application/json", resp.ContentType())
	require.Equal(t, "utf-8", resp.Charset("ascii"))
	require.Equal(t, `[{"id":1}]`, string(resp.Body))
}

func TestClientErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Get(context.Background(), "/missing", nil)
	require.NoError(t, err, "HTTP error statuses are data, not transport failures")
	require.Equal(t, 404, resp.StatusCode)
}

func TestClientPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Post(context.Background(), "/users", []byte(`{"name":"x"}`))
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)
}

func TestClientContextCancel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New(srv.URL).Get(ctx, "/slow", nil)
	require.Error(t, err)
}

func TestCollectionList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/albums", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("page"))
		require.Equal(t, "25", r.URL.Query().Get("per_page"))
		require.Equal(t, "rock", r.URL.Query().Get("genre"))
		w.Header().Set(model.HeaderCurrentPage, "3")
		w.Header().Set(model.HeaderPageCount, "7")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	col := &Collection{
		Client: New(srv.URL),
		Path:   "/albums",
		Query:  url.Values{"genre": []string{"rock"}},
	}
	resp, err := col.FetchList(context.Background(), nil, model.PageQuery{Page: 3, PerPage: 25})
	require.NoError(t, err)
	page, ok := resp.IntHeader(model.HeaderCurrentPage)
	require.True(t, ok)
	require.Equal(t, 3, page)
}

func TestCollectionAllOmitsPageParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("page"))
		require.False(t, r.URL.Query().Has("per_page"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	col := &Collection{Client: New(srv.URL), Path: "/albums"}
	_, err := col.FetchList(context.Background(), nil, model.PageQuery{All: true})
	require.NoError(t, err)
}

func TestCollectionDrivesModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/albums":
			w.Write([]byte(`[{"id":1,"title":"a"}]`))
		case "/albums/1":
			w.Write([]byte(`{"id":1,"title":"a","year":1999}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	col := &Collection{
		Client: New(srv.URL),
		Path:   "/albums",
		DetailPath: func(node *model.Node) string {
			return "/albums/1"
		},
	}
	m, err := model.New(model.Config{
		Source:  col,
		Details: col,
		Configure: func(node *model.Node) {
			node.EnableDetails()
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, err := m.LoadNext(nil)
	require.NoError(t, err)
	require.NoError(t, a.Wait(ctx))
	require.Equal(t, 1, m.RowCount(nil))

	node := m.ChildAt(nil, 0)
	a, err = m.LoadDetails(node)
	require.NoError(t, err)
	require.NoError(t, a.Wait(ctx))
	require.Equal(t, float64(1999), node.Field("year"))
}
