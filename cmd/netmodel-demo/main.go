package main

import (
	"fmt"
	"log"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/fynex/netmodel/client"
	"github.com/fynex/netmodel/model"
	"github.com/fynex/netmodel/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.fynex.netmodel-demo"
	AppName = "NetModel Demo"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := NewSettings(myApp)

	col := &client.Collection{
		Client: client.New(settings.GetBaseURL()),
		Path:   settings.GetListPath(),
	}
	m, err := model.New(model.Config{
		Source:         col,
		RootPolicy:     model.PolicyCombined,
		RootPagination: settings.NewPagination(),
	})
	if err != nil {
		log.Fatalf("create model: %v", err)
	}

	list := ui.NewList(m, nil, settings.GetDisplayField())

	status := widget.NewLabel("Idle")
	m.Subscribe(func(ev model.Event) {
		switch ev.Kind {
		case model.EventChildrenLoadingStarted:
			fyne.Do(func() { status.SetText("Loading…") })
		case model.EventChildrenLoadingFinished:
			fyne.Do(func() {
				status.SetText(fmt.Sprintf("%d rows, state %s", m.RowCount(nil), m.ChildrenState(nil)))
			})
		case model.EventError:
			err := ev.Err
			fyne.Do(func() { status.SetText("Error: " + err.Summary) })
		}
	})

	reloadBtn := widget.NewButton("Reload", func() {
		if _, err := m.Reload(nil); err != nil {
			log.Printf("reload: %v", err)
		}
	})
	moreBtn := widget.NewButton("Load more", func() {
		if _, err := m.LoadNext(nil); err != nil {
			log.Printf("load next: %v", err)
		}
	})

	detail := widget.NewLabel("")
	detail.Wrapping = fyne.TextWrapWord
	list.OnSelected = func(id widget.ListItemID) {
		node := list.Node(id)
		if node == nil {
			return
		}
		detail.SetText(formatFields(m.FieldsOf(node)))
	}

	toolbar := container.NewHBox(reloadBtn, moreBtn, status)
	content := container.NewBorder(toolbar, detail, nil, nil, list)
	myWindow.SetContent(content)

	if _, err := m.LoadNext(nil); err != nil {
		log.Printf("initial load: %v", err)
	}

	myWindow.ShowAndRun()
}

// formatFields renders a node's fields one per line, in key order
func formatFields(fields map[string]any) string {
	out := ""
	for _, k := range sortedKeys(fields) {
		out += fmt.Sprintf("%s: %v\n", k, fields[k])
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
