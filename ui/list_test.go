package ui

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"github.com/fynex/netmodel/model"
)

func listResponse(body string) *model.Response {
	return &model.Response{StatusCode: 200, Body: []byte(body)}
}

func loadedModel(t *testing.T, body string) *model.Model {
	t.Helper()
	m, err := model.New(model.Config{
		Source: model.SourceFunc(func(ctx context.Context, node *model.Node, q model.PageQuery) (*model.Response, error) {
			return listResponse(body), nil
		}),
	})
	require.NoError(t, err)

	a, err := m.LoadNext(nil)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Wait(ctx))
	return m
}

func TestListShowsLoadedRows(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	m := loadedModel(t, `[{"name":"alpha"},{"name":"beta"}]`)
	l := NewList(m, nil, "name")
	defer l.Close()

	w := test.NewWindow(l)
	defer w.Close()

	require.Equal(t, 2, l.length())
	require.Equal(t, "alpha", l.Node(0).Field("name"))
	require.Equal(t, "beta", l.Node(1).Field("name"))
}

func TestListTracksRemoval(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	m := loadedModel(t, `[{"name":"alpha"},{"name":"beta"}]`)
	l := NewList(m, nil, "name")
	defer l.Close()

	require.NoError(t, m.RemoveRow(nil, 0))
	require.Equal(t, 1, l.length())
	require.Equal(t, "beta", l.Node(0).Field("name"))
}

func TestTreeWalksNodes(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	m := loadedModel(t, `[{"name":"alpha"},{"name":"beta"}]`)
	tree := NewTree(m, "name")
	defer tree.Close()

	roots := tree.childUIDs("")
	require.Len(t, roots, 2)
	require.Equal(t, "alpha", tree.NodeFor(roots[0]).Field("name"))
	require.False(t, tree.isBranch(roots[0]), "leaf without loadable children")
	require.True(t, tree.isBranch(""), "invisible root is always a branch")
}
