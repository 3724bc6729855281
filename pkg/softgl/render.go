package softgl

import "github.com/gogpu/gg"

type node interface {
	draw(dc *gg.Context) error
}

// quad is a parallelogram in normalized device coordinates, where (-1,-1) is
// the bottom-left corner of the frame.
type quad struct {
	corner, width, height [3]float64
}

func defaultQuad() *quad {
	return &quad{
		corner: [3]float64{-0.5, -0.5, 0},
		width:  [3]float64{1, 0, 0},
		height: [3]float64{0, 1, 0},
	}
}

func fullscreenQuad() *quad {
	return &quad{
		corner: [3]float64{-1, -1, 0},
		width:  [3]float64{2, 0, 0},
		height: [3]float64{0, 2, 0},
	}
}

// Geometry alone produces no pixels.
func (q *quad) draw(*gg.Context) error { return nil }

func (q *quad) path(dc *gg.Context) {
	w, h := float64(dc.Width()), float64(dc.Height())
	pt := func(x, y float64) (float64, float64) {
		return (x + 1) / 2 * w, (1 - y) / 2 * h
	}
	c, u, v := q.corner, q.width, q.height
	dc.MoveTo(pt(c[0], c[1]))
	dc.LineTo(pt(c[0]+u[0], c[1]+u[1]))
	dc.LineTo(pt(c[0]+u[0]+v[0], c[1]+u[1]+v[1]))
	dc.LineTo(pt(c[0]+v[0], c[1]+v[1]))
	dc.ClosePath()
}

type drawColor struct {
	color    [3]float64
	opacity  float64
	geometry *quad
}

func (d *drawColor) draw(dc *gg.Context) error {
	dc.SetRGBA(d.color[0], d.color[1], d.color[2], d.opacity)
	d.geometry.path(dc)
	return dc.Fill()
}

type group struct {
	children []node
}

func (g *group) draw(dc *gg.Context) error {
	for _, c := range g.children {
		if err := c.draw(dc); err != nil {
			return err
		}
	}
	return nil
}

func render(dc *gg.Context, root node) error {
	if root == nil {
		return nil
	}
	return root.draw(dc)
}
