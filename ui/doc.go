package ui

// Package ui contains Fyne widgets backed by a netmodel Model. The widgets
// subscribe to model events and refresh themselves on the UI thread, so rows
// appear as soon as their data arrives from the network.
