package softgl

import (
	"testing"

	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

const redScene = `# Nope.GL v0.11.0
# duration=403Z9000000000000
# aspect_ratio=320/240
# framerate=60/1
Quad corner:-1,-1,0 width:2,0,0 height:0,2,0
DCol color:1,0,0 geometry:1
`

func TestParseMetadata(t *testing.T) {
	doc, err := Parse(redScene)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Version != "v0.11.0" {
		t.Errorf("Version = %q", doc.Version)
	}
	if doc.Duration != 25 {
		t.Errorf("Duration = %g, want 25", doc.Duration)
	}
	if doc.AspectRatio != [2]int{320, 240} {
		t.Errorf("AspectRatio = %v", doc.AspectRatio)
	}
	if doc.Framerate != [2]int{60, 1} {
		t.Errorf("Framerate = %v", doc.Framerate)
	}
	if doc.Nodes != 2 {
		t.Errorf("Nodes = %d, want 2", doc.Nodes)
	}
	if _, ok := doc.root.(*drawColor); !ok {
		t.Errorf("root = %T, want *drawColor", doc.root)
	}
}

func TestParseGroup(t *testing.T) {
	doc, err := Parse(`# Nope.GL v0.10.2
Quad
DCol color:0,0,1 geometry:1
DCol color:0,1,0 opacity:0.5
Grup children:2,1
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, ok := doc.root.(*group)
	if !ok {
		t.Fatalf("root = %T, want *group", doc.root)
	}
	if len(g.children) != 2 {
		t.Fatalf("children = %d, want 2", len(g.children))
	}
	blue := g.children[0].(*drawColor)
	if blue.color != [3]float64{0, 0, 1} || blue.geometry.corner != [3]float64{-0.5, -0.5, 0} {
		t.Errorf("first child = %+v", blue)
	}
	green := g.children[1].(*drawColor)
	if green.opacity != 0.5 || green.geometry.width != [3]float64{2, 0, 0} {
		t.Errorf("second child = %+v", green)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		code int
	}{
		{"empty", "", ngl.StatusInvalidData},
		{"garbage", "this is not a scene", ngl.StatusInvalidData},
		{"bad version", "# Nope.GL 0.11\nQuad", ngl.StatusInvalidData},
		{"newer version", "# Nope.GL v0.12.0\nQuad", ngl.StatusUnsupported},
		{"newer major", "# Nope.GL v1.0.0\nQuad", ngl.StatusUnsupported},
		{"no nodes", "# Nope.GL v0.11.0\n# framerate=60/1\n", ngl.StatusInvalidData},
		{"unknown node", "# Nope.GL v0.11.0\nTex2 data_src:1", ngl.StatusUnsupported},
		{"unknown param", "# Nope.GL v0.11.0\nQuad depth:1", ngl.StatusInvalidData},
		{"malformed param", "# Nope.GL v0.11.0\nQuad corner", ngl.StatusInvalidData},
		{"short vector", "# Nope.GL v0.11.0\nQuad corner:1,2", ngl.StatusInvalidData},
		{"dangling ref", "# Nope.GL v0.11.0\nDCol geometry:1", ngl.StatusInvalidData},
		{"zero ref", "# Nope.GL v0.11.0\nQuad\nDCol geometry:0", ngl.StatusInvalidData},
		{"geometry type", "# Nope.GL v0.11.0\nGrup\nDCol geometry:1", ngl.StatusInvalidData},
		{"bad framerate", "# Nope.GL v0.11.0\n# framerate=60/0\nQuad", ngl.StatusInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := StatusOf(err); got != tt.code {
				t.Errorf("StatusOf = %s, want %s", ngl.StatusString(got), ngl.StatusString(tt.code))
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"-2", -2},
		{"0x1p-2", 0.25},
		{"3FF0000000000000", 1},
		{"403Z9000000000000", 25},
	}
	for _, tt := range tests {
		got, err := parseFloat(tt.in)
		if err != nil {
			t.Errorf("parseFloat(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFloat(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}
	if _, err := parseFloat("red"); err == nil {
		t.Error("parseFloat(\"red\") should fail")
	}
}
