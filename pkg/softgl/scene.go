package softgl

import "github.com/nopeforge/nopegl-go/pkg/ngl"

type scene struct {
	refs int
	root node
	meta Metadata
}

// SceneCreate implements ngl.Engine. The scene starts with one reference.
func (e *Engine) SceneCreate() ngl.SceneHandle {
	e.mu.Lock()
	defer e.mu.Unlock()
	h := ngl.SceneHandle(e.id())
	e.scenes[h] = &scene{refs: 1}
	return h
}

// SceneInitFromString implements ngl.Engine. On failure the scene keeps its
// previous content.
func (e *Engine) SceneInitFromString(s ngl.SceneHandle, text string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	sc, ok := e.scenes[s]
	if !ok {
		return ngl.StatusInvalidArg
	}
	parsed, err := Parse(text)
	if err != nil {
		e.logf(ngl.LogError, "%v", err)
		return StatusOf(err)
	}
	sc.root = parsed.root
	sc.meta = parsed.Metadata
	return ngl.StatusOK
}

// SceneUnref implements ngl.Engine. Unknown handles are ignored.
func (e *Engine) SceneUnref(s ngl.SceneHandle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.unrefLocked(s)
}

// sceneMetadata returns the header values of the scene installed on a
// context.
func (e *Engine) sceneMetadata(h ngl.Handle) (Metadata, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rc, ok := e.contexts[h]
	if !ok || rc.scene == 0 {
		return Metadata{}, false
	}
	sc, ok := e.scenes[rc.scene]
	if !ok {
		return Metadata{}, false
	}
	return sc.meta, true
}

func (e *Engine) unrefLocked(s ngl.SceneHandle) {
	sc, ok := e.scenes[s]
	if !ok {
		return
	}
	sc.refs--
	if sc.refs <= 0 {
		delete(e.scenes, s)
	}
}
