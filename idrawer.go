package arm

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// Draw flags
const (
	DrawBones     = 1 << 0
	DrawColliders = 1 << 1
	DrawContacts  = 1 << 2
)

// ellipseSegments is the number of edges used to outline an ellipse.
const ellipseSegments = 32

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

// BoneStyle holds the visual attributes of one segment. Styles live in a
// map keyed by segment index, next to the chain rather than inside it.
type BoneStyle struct {
	Width float64
	Fill  FColor
}

type IDrawer interface {
	DrawCircle(pos vec.Vec2, angle, radius float64, outline, fill FColor, data any)
	DrawSegment(a, b vec.Vec2, fill FColor, data any)
	DrawFatSegment(a, b vec.Vec2, radius float64, outline, fill FColor, data any)
	DrawPolygon(count int, verts []vec.Vec2, radius float64, outline, fill FColor, data any)
	DrawDot(size float64, pos vec.Vec2, fill FColor, data any)

	Flags() uint
	OutlineColor() FColor
	ColliderColor(collider *Collider, data any) FColor
	ContactColor() FColor
	Data() any
}

// DrawChain draws every segment with its style. Segments without a style
// are drawn as thin segments in the outline color.
func DrawChain(chain *Chain, styles map[int]BoneStyle, drawer IDrawer) {
	if drawer.Flags()&DrawBones == 0 {
		return
	}
	data := drawer.Data()
	outline := drawer.OutlineColor()

	for i, b := range chain.Segments() {
		style, ok := styles[i]
		if !ok || style.Width <= 0 {
			drawer.DrawSegment(b.Start(), b.End(), outline, data)
			continue
		}
		drawer.DrawFatSegment(b.Start(), b.End(), style.Width/2, outline, style.Fill, data)
	}
	drawer.DrawDot(3, chain.Root().End(), outline, data)
}

// DrawCollider draws a collider with the drawer implementation
func DrawCollider(collider *Collider, drawer IDrawer) {
	if drawer.Flags()&DrawColliders == 0 {
		return
	}
	data := drawer.Data()
	outline := drawer.OutlineColor()
	fill := drawer.ColliderColor(collider, data)

	switch shape := collider.Class.(type) {
	case *Circle:
		drawer.DrawCircle(shape.Center, 0, shape.Radius, outline, fill, data)
	case *PolyShape:
		count := shape.Count()
		verts := make([]vec.Vec2, count)
		for i := range count {
			verts[i] = shape.Vert(i)
		}
		drawer.DrawPolygon(count, verts, 0, outline, fill, data)
	case *HalfPlane:
		// A long stretch of the boundary line stands in for the whole plane.
		along := reversePerp(shape.Normal).Scale(1e4)
		drawer.DrawSegment(shape.Point.Sub(along), shape.Point.Add(along), fill, data)
	case *Ellipse:
		verts := make([]vec.Vec2, ellipseSegments)
		for i := range ellipseSegments {
			sin, cos := math.Sincos(2 * math.Pi * float64(i) / ellipseSegments)
			verts[i] = shape.toWorld.Apply(vec.Vec2{X: shape.Axes.X * cos, Y: shape.Axes.Y * sin})
		}
		drawer.DrawPolygon(ellipseSegments, verts, 0, outline, fill, data)
	default:
		panic(fmt.Sprintf("Implement me: %#v", collider.Class))
	}
}

// DrawContact marks a collision and its push-out.
func DrawContact(c *Collision, drawer IDrawer) {
	if drawer.Flags()&DrawContacts == 0 {
		return
	}
	data := drawer.Data()
	color := drawer.ContactColor()
	drawer.DrawDot(5, c.Origin, color, data)
	drawer.DrawSegment(c.Origin, c.Origin.Add(c.Offset), color, data)
}

// DrawScene draws colliders first and the chain on top.
func DrawScene(chain *Chain, styles map[int]BoneStyle, colliders []*Collider, drawer IDrawer) {
	for _, c := range colliders {
		DrawCollider(c, drawer)
	}
	DrawChain(chain, styles, drawer)
}
