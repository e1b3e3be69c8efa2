package main

import (
	"fyne.io/fyne/v2"

	"github.com/fynex/netmodel/model"
)

// Settings keys for Fyne preferences
const (
	KeyBaseURL      = "base_url"
	KeyListPath     = "list_path"
	KeyDisplayField = "display_field"
	KeyPerPage      = "per_page"
	KeyPageMode     = "page_mode"
)

// Default values
const (
	DefaultBaseURL      = "https://jsonplaceholder.typicode.com"
	DefaultListPath     = "/posts"
	DefaultDisplayField = "title"
	DefaultPageMode     = "all"
)

// Settings manages the demo configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetBaseURL returns the configured API base URL
func (s *Settings) GetBaseURL() string {
	v := s.app.Preferences().String(KeyBaseURL)
	if v == "" {
		s.SetBaseURL(DefaultBaseURL)
		return DefaultBaseURL
	}
	return v
}

// SetBaseURL sets the API base URL
func (s *Settings) SetBaseURL(u string) {
	s.app.Preferences().SetString(KeyBaseURL, u)
}

// GetListPath returns the collection endpoint path
func (s *Settings) GetListPath() string {
	v := s.app.Preferences().String(KeyListPath)
	if v == "" {
		s.SetListPath(DefaultListPath)
		return DefaultListPath
	}
	return v
}

// SetListPath sets the collection endpoint path
func (s *Settings) SetListPath(p string) {
	s.app.Preferences().SetString(KeyListPath, p)
}

// GetDisplayField returns the field rendered in list rows
func (s *Settings) GetDisplayField() string {
	v := s.app.Preferences().String(KeyDisplayField)
	if v == "" {
		s.SetDisplayField(DefaultDisplayField)
		return DefaultDisplayField
	}
	return v
}

// SetDisplayField sets the field rendered in list rows
func (s *Settings) SetDisplayField(f string) {
	s.app.Preferences().SetString(KeyDisplayField, f)
}

// GetPerPage returns the configured page size
func (s *Settings) GetPerPage() int {
	v := s.app.Preferences().Int(KeyPerPage)
	if v <= 0 {
		s.SetPerPage(model.DefaultPerPage)
		return model.DefaultPerPage
	}
	return v
}

// SetPerPage sets the page size
func (s *Settings) SetPerPage(n int) {
	if n < 1 {
		n = 1
	}
	s.app.Preferences().SetInt(KeyPerPage, n)
}

// GetPageMode returns "all", "accumulate", or "replace"
func (s *Settings) GetPageMode() string {
	v := s.app.Preferences().String(KeyPageMode)
	switch v {
	case "all", "accumulate", "replace":
		return v
	}
	s.SetPageMode(DefaultPageMode)
	return DefaultPageMode
}

// SetPageMode sets the pagination mode
func (s *Settings) SetPageMode(mode string) {
	s.app.Preferences().SetString(KeyPageMode, mode)
}

// NewPagination builds a root pagination from the configured mode
func (s *Settings) NewPagination() model.Pagination {
	switch s.GetPageMode() {
	case "accumulate":
		p := model.NewAccumulate()
		p.SetPerPage(s.GetPerPage())
		return p
	case "replace":
		p := model.NewReplace()
		p.SetPerPage(s.GetPerPage())
		return p
	default:
		return model.NewAllAtOnce()
	}
}
