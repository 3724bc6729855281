package nopegl

import (
	nglerrors "github.com/nopeforge/nopegl-go/pkg/errors"
	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

// sceneRef is the loader's own reference to a scene.
type sceneRef struct {
	engine ngl.Engine
	handle ngl.SceneHandle
}

func (r *sceneRef) release() {
	if r.handle == 0 {
		return
	}
	r.engine.SceneUnref(r.handle)
	r.handle = 0
}

// loadScene creates a scene from text and installs it on h. The context
// takes its own reference; the loader's is dropped on every path.
func loadScene(op string, e ngl.Engine, h ngl.Handle, text string) error {
	s := e.SceneCreate()
	if s == 0 {
		return &nglerrors.Error{Op: op, Kind: nglerrors.KindAllocation, Code: ngl.StatusMemory, Err: nglerrors.ErrOutOfMemory}
	}
	ref := &sceneRef{engine: e, handle: s}
	defer ref.release()

	if ret := e.SceneInitFromString(s, text); ret < 0 {
		return nglerrors.SceneParse(op, ret)
	}
	return nglerrors.Native(op, e.SetScene(h, s))
}
