package softgl

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

const headerPrefix = "# Nope.GL "

// Metadata holds the header values of a serialized scene.
type Metadata struct {
	Version     string
	Duration    float64
	AspectRatio [2]int
	Framerate   [2]int
}

// Document is a parsed scene. The last node is the root.
type Document struct {
	Metadata
	Nodes int
	root  node
}

// ParseError reports a malformed or unsupported scene.
type ParseError struct {
	Line int
	Code int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("scene line %d: %s", e.Line, e.Msg)
	}
	return "scene: " + e.Msg
}

// StatusOf returns the engine status carried by a parse error, or
// StatusInvalidData for any other non-nil error.
func StatusOf(err error) int {
	if err == nil {
		return ngl.StatusOK
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ngl.StatusInvalidData
}

type parser struct {
	line  int
	nodes []node
}

func (p *parser) fail(code int, format string, args ...any) error {
	return &ParseError{Line: p.line, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Parse reads a serialized scene. Supported nodes are Quad, DCol and Grup;
// any other node type is reported with StatusUnsupported.
func Parse(text string) (*Document, error) {
	doc := &Document{}
	p := &parser{}
	sawHeader := false

	for _, raw := range strings.Split(text, "\n") {
		p.line++
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !sawHeader {
			if err := p.header(line, &doc.Metadata); err != nil {
				return nil, err
			}
			sawHeader = true
			continue
		}
		if strings.HasPrefix(line, "#") {
			if err := p.meta(line[1:], &doc.Metadata); err != nil {
				return nil, err
			}
			continue
		}
		n, err := p.node(line)
		if err != nil {
			return nil, err
		}
		p.nodes = append(p.nodes, n)
	}

	if !sawHeader {
		return nil, &ParseError{Code: ngl.StatusInvalidData, Msg: "missing header"}
	}
	if len(p.nodes) == 0 {
		return nil, &ParseError{Code: ngl.StatusInvalidData, Msg: "no nodes"}
	}
	doc.Nodes = len(p.nodes)
	doc.root = p.nodes[len(p.nodes)-1]
	return doc, nil
}

func (p *parser) header(line string, m *Metadata) error {
	v, ok := strings.CutPrefix(line, headerPrefix)
	if !ok {
		return p.fail(ngl.StatusInvalidData, "expected %q header", strings.TrimSpace(headerPrefix))
	}
	if !semver.IsValid(v) {
		return p.fail(ngl.StatusInvalidData, "invalid version %q", v)
	}
	if semver.Compare(semver.MajorMinor(v), semver.MajorMinor(Version)) > 0 {
		return p.fail(ngl.StatusUnsupported, "scene version %s is newer than %s", v, Version)
	}
	m.Version = v
	return nil
}

// meta reads "key=value" header lines. Unknown keys are ignored.
func (p *parser) meta(line string, m *Metadata) error {
	key, val, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return nil
	}
	var err error
	switch key {
	case "duration":
		m.Duration, err = parseFloat(val)
	case "aspect_ratio":
		m.AspectRatio, err = parseRational(val)
	case "framerate":
		m.Framerate, err = parseRational(val)
	}
	if err != nil {
		return p.fail(ngl.StatusInvalidData, "%s: %v", key, err)
	}
	return nil
}

func (p *parser) node(line string) (node, error) {
	fields := strings.Fields(line)
	tag, params := fields[0], fields[1:]

	switch tag {
	case "Quad":
		q := defaultQuad()
		for _, kv := range params {
			k, v, err := p.param(kv)
			if err != nil {
				return nil, err
			}
			switch k {
			case "corner":
				q.corner, err = parseVec3(v)
			case "width":
				q.width, err = parseVec3(v)
			case "height":
				q.height, err = parseVec3(v)
			default:
				return nil, p.fail(ngl.StatusInvalidData, "Quad has no parameter %q", k)
			}
			if err != nil {
				return nil, p.fail(ngl.StatusInvalidData, "%s: %v", k, err)
			}
		}
		return q, nil

	case "DCol":
		d := &drawColor{color: [3]float64{1, 1, 1}, opacity: 1}
		for _, kv := range params {
			k, v, err := p.param(kv)
			if err != nil {
				return nil, err
			}
			switch k {
			case "color":
				d.color, err = parseVec3(v)
			case "opacity":
				d.opacity, err = parseFloat(v)
			case "geometry":
				var n node
				if n, err = p.ref(v); err == nil {
					q, ok := n.(*quad)
					if !ok {
						return nil, p.fail(ngl.StatusInvalidData, "geometry must reference a Quad")
					}
					d.geometry = q
				}
			default:
				return nil, p.fail(ngl.StatusInvalidData, "DCol has no parameter %q", k)
			}
			if err != nil {
				return nil, p.fail(ngl.StatusInvalidData, "%s: %v", k, err)
			}
		}
		if d.geometry == nil {
			d.geometry = fullscreenQuad()
		}
		return d, nil

	case "Grup":
		g := &group{}
		for _, kv := range params {
			k, v, err := p.param(kv)
			if err != nil {
				return nil, err
			}
			if k != "children" {
				return nil, p.fail(ngl.StatusInvalidData, "Grup has no parameter %q", k)
			}
			for _, r := range strings.Split(v, ",") {
				n, err := p.ref(r)
				if err != nil {
					return nil, p.fail(ngl.StatusInvalidData, "children: %v", err)
				}
				g.children = append(g.children, n)
			}
		}
		return g, nil
	}

	return nil, p.fail(ngl.StatusUnsupported, "node type %q is not supported", tag)
}

func (p *parser) param(kv string) (string, string, error) {
	k, v, ok := strings.Cut(kv, ":")
	if !ok || k == "" {
		return "", "", p.fail(ngl.StatusInvalidData, "malformed parameter %q", kv)
	}
	return k, v, nil
}

// ref resolves a backward reference: 1 is the node on the previous line.
func (p *parser) ref(s string) (node, error) {
	off, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid reference %q", s)
	}
	i := len(p.nodes) - off
	if off < 1 || i < 0 {
		return nil, fmt.Errorf("reference %d out of range", off)
	}
	return p.nodes[i], nil
}

// parseFloat accepts decimal and hexadecimal floating point literals as well
// as the serializer's raw IEEE-754 form, 16 hex digits optionally split by a
// 'Z' marker.
func parseFloat(s string) (float64, error) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	bits := strings.NewReplacer("Z", "", "z", "").Replace(s)
	if len(bits) == 16 {
		if u, err := strconv.ParseUint(bits, 16, 64); err == nil {
			return math.Float64frombits(u), nil
		}
	}
	return 0, fmt.Errorf("invalid number %q", s)
}

func parseVec3(s string) ([3]float64, error) {
	var v [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != len(v) {
		return v, fmt.Errorf("expected 3 components, got %d", len(parts))
	}
	for i, part := range parts {
		f, err := parseFloat(part)
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func parseRational(s string) ([2]int, error) {
	var r [2]int
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return r, fmt.Errorf("expected n/d, got %q", s)
	}
	var err error
	if r[0], err = strconv.Atoi(num); err != nil {
		return r, err
	}
	if r[1], err = strconv.Atoi(den); err != nil {
		return r, err
	}
	if r[1] == 0 {
		return r, fmt.Errorf("zero denominator in %q", s)
	}
	return r, nil
}
