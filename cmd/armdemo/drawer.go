package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/setanarut/arm"
	"github.com/setanarut/vec"
)

// cellDrawer rasterizes world geometry onto terminal cells.
type cellDrawer struct {
	screen tcell.Screen
	view   arm.Matrix // world to cell coordinates
	flags  uint
}

// newView maps a world box centred on center onto a w x h cell grid. Cells
// are twice as tall as they are wide, so the world box is stretched to keep
// circles round.
func newView(center vec.Vec2, halfWidth float64, w, h int) arm.Matrix {
	halfHeight := halfWidth * 2 * float64(h) / float64(w)
	ortho := arm.NewMatrixOrtho(arm.NewBBForExtents(center, halfWidth, halfHeight))
	toCells := arm.NewMatrixTranspose(
		float64(w)/2, 0, float64(w)/2,
		0, -float64(h)/2, float64(h)/2,
	)
	return toCells.Mult(ortho)
}

func toStyle(c arm.FColor) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(
		int32(c.R*255), int32(c.G*255), int32(c.B*255)))
}

func (d *cellDrawer) plot(p vec.Vec2, r rune, style tcell.Style) {
	cell := d.view.Apply(p)
	d.screen.SetContent(int(math.Floor(cell.X)), int(math.Floor(cell.Y)), r, nil, style)
}

func (d *cellDrawer) line(a, b vec.Vec2, r rune, style tcell.Style) {
	ca, cb := d.view.Apply(a), d.view.Apply(b)
	steps := int(math.Ceil(math.Max(math.Abs(cb.X-ca.X), math.Abs(cb.Y-ca.Y))))
	// Off-screen half-planes are clipped by the terminal; cap the walk.
	steps = min(max(steps, 1), 4096)
	for i := 0; i <= steps; i++ {
		d.plot(a.Lerp(b, float64(i)/float64(steps)), r, style)
	}
}

func (d *cellDrawer) DrawCircle(pos vec.Vec2, _, radius float64, _, fill arm.FColor, _ any) {
	style := toStyle(fill)
	const n = 48
	for i := range n {
		d.plot(pos.Add(vec.ForAngle(2*math.Pi*float64(i)/n).Scale(radius)), 'o', style)
	}
}

func (d *cellDrawer) DrawSegment(a, b vec.Vec2, fill arm.FColor, _ any) {
	d.line(a, b, '.', toStyle(fill))
}

func (d *cellDrawer) DrawFatSegment(a, b vec.Vec2, _ float64, _, fill arm.FColor, _ any) {
	d.line(a, b, '█', toStyle(fill))
}

func (d *cellDrawer) DrawPolygon(count int, verts []vec.Vec2, _ float64, _, fill arm.FColor, _ any) {
	style := toStyle(fill)
	for i := range count {
		d.line(verts[i], verts[(i+1)%count], '#', style)
	}
}

func (d *cellDrawer) DrawDot(_ float64, pos vec.Vec2, fill arm.FColor, _ any) {
	d.plot(pos, '●', toStyle(fill))
}

func (d *cellDrawer) Flags() uint {
	return d.flags
}

func (d *cellDrawer) OutlineColor() arm.FColor {
	return arm.FColor{R: 0.8, G: 0.8, B: 0.8, A: 1}
}

func (d *cellDrawer) ColliderColor(c *arm.Collider, _ any) arm.FColor {
	if c.Soft {
		return arm.FColor{R: 0.3, G: 0.5, B: 1, A: 1}
	}
	return arm.FColor{R: 0.9, G: 0.4, B: 0.2, A: 1}
}

func (d *cellDrawer) ContactColor() arm.FColor {
	return arm.FColor{R: 1, G: 0.2, B: 0.2, A: 1}
}

func (d *cellDrawer) Data() any {
	return nil
}
