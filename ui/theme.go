package ui

import (
	"image/color"

	"TickTack/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CustomTheme applies the TickTack palette on top of the default theme.
type CustomTheme struct {
	fyne.Theme
}

// NewCustomTheme creates a new instance of the custom theme.
func NewCustomTheme() fyne.Theme {
	return &CustomTheme{Theme: theme.DefaultTheme()}
}

// Color returns the palette color for name.
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return timer.PrimaryColor
	case theme.ColorNameError:
		return timer.DangerColor
	}
	return t.Theme.Color(name, variant)
}
