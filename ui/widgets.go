package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.HeaderFontSize + r.Theme.RowGap
}

// DrawLabel draws a text label.
func (r *Renderer) DrawLabel(x, y int32, text string) {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// DrawLabelValue draws a label and a right-aligned value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string, totalWidth int32) {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	w := rl.MeasureText(value, r.Theme.FontSize)
	rl.DrawText(value, x+totalWidth-w, y, r.Theme.FontSize, r.Theme.ValueColor)
}

// DrawActiveOutline highlights the selected button of a group.
func (r *Renderer) DrawActiveOutline(bounds rl.Rectangle) {
	rl.DrawRectangleLinesEx(bounds, 2, r.Theme.ActiveOutline)
}

// DrawColorSwatch draws a filled swatch with a border.
func (r *Renderer) DrawColorSwatch(bounds rl.Rectangle, color rl.Color) {
	rl.DrawRectangleRec(bounds, color)
	rl.DrawRectangleLinesEx(bounds, 1, r.Theme.PanelBorder)
}
