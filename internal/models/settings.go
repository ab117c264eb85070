package models

import (
	"fmt"
	"runtime"
	"strings"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) String() string {
	return string(t)
}

func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(s) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	case "system":
		return ThemeSystem, nil
	default:
		return "", fmt.Errorf("unknown theme: %q", s)
	}
}

// ClipboardMode selects what a selection puts on the clipboard: the cached
// file itself or the remote URL.
type ClipboardMode string

const (
	ClipboardModeFile ClipboardMode = "file"
	ClipboardModeURL  ClipboardMode = "url"
)

func (c ClipboardMode) String() string {
	return string(c)
}

func ParseClipboardMode(s string) (ClipboardMode, error) {
	switch strings.ToLower(s) {
	case "file":
		return ClipboardModeFile, nil
	case "url":
		return ClipboardModeURL, nil
	default:
		return "", fmt.Errorf("unknown clipboard mode: %q", s)
	}
}

// Settings is the single process-wide configuration record.
type Settings struct {
	APIKey              *string       `json:"api_key"`
	Hotkey              string        `json:"hotkey"`
	WindowWidth         int           `json:"window_width"`
	WindowHeight        int           `json:"window_height"`
	MaxItemWidth        int           `json:"max_item_width"`
	CloseAfterSelection bool          `json:"close_after_selection"`
	LaunchAtStartup     bool          `json:"launch_at_startup"`
	Theme               Theme         `json:"theme"`
	ClipboardMode       ClipboardMode `json:"clipboard_mode"`
}

// DefaultSettings is what a fresh install sees before anything is stored.
func DefaultSettings() Settings {
	return Settings{
		Hotkey:              defaultHotkey(),
		WindowWidth:         800,
		WindowHeight:        600,
		MaxItemWidth:        400,
		CloseAfterSelection: true,
		LaunchAtStartup:     false,
		Theme:               ThemeSystem,
		ClipboardMode:       ClipboardModeFile,
	}
}

func defaultHotkey() string {
	if runtime.GOOS == "darwin" {
		return "Option+Cmd+G"
	}
	return "Ctrl+Shift+G"
}
