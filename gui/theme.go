//go:build gui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// widgetTheme keeps the strip background dark so the idle gray dots stay
// visible without a frame.
type widgetTheme struct{}

func (w *widgetTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground:
		return color.NRGBA{0, 0, 0, 200}
	case theme.ColorNameForeground:
		return color.White
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (w *widgetTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (w *widgetTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (w *widgetTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding || name == theme.SizeNameInnerPadding {
		return 0
	}
	return theme.DefaultTheme().Size(name)
}
