// Package ui draws the controls panel and the HUD over the 3D scene.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	ActiveOutline  rl.Color
	Padding        int32
	LineHeight     int32
	ButtonHeight   int32
	SliderHeight   int32
	PickerHeight   int32
	RowGap         int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 12, B: 22, A: 210},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 90, A: 255},
		SectionHeader:  rl.Color{R: 34, G: 211, B: 238, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		ActiveOutline:  rl.Color{R: 34, G: 211, B: 238, A: 255},
		Padding:        12,
		LineHeight:     16,
		ButtonHeight:   26,
		SliderHeight:   16,
		PickerHeight:   72,
		RowGap:         8,
		FontSize:       12,
		HeaderFontSize: 18,
	}
}
