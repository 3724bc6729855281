package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"

	nopegl "github.com/nopeforge/nopegl-go"
	"github.com/nopeforge/nopegl-go/pkg/hostconfig"
	"github.com/nopeforge/nopegl-go/pkg/marshal"
	"github.com/nopeforge/nopegl-go/pkg/ngl"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a scene offscreen to image files",
		Long: `Render a serialized scene offscreen and write the captured frames.

The configuration file (YAML, TOML or JSON) uses the engine's property
names: backend, width, height, samples, clearColor, hud, hudScale, ...
Rendering is always offscreen; width and height are required.

Flags:
  --config FILE      Configuration file (required)
  --scene FILE       Scene file (required). An empty file renders the clear color
  --time T           Time to draw, repeatable or comma separated (default 0)
  --out FILE         Output file (default frame.png). Several times add -NNN
  --format NAME      png, bmp or tiff (default: from --out extension)
  --logger NAME      Engine log sink: charm, slog or zap (default charm)
  --watch            Re-render whenever the scene file changes
  --verbose          Include debug and verbose records`,
		Usage: "nglrender render --config FILE --scene FILE [flags]",
		Run:   runRender,
	})
}

type renderOptions struct {
	config  string
	scene   string
	out     string
	format  string
	logger  string
	times   []float64
	watch   bool
	verbose bool
}

func parseRenderArgs(args []string) (renderOptions, error) {
	opts := renderOptions{out: "frame.png"}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--watch":
			opts.watch = true
			continue
		case "--verbose":
			opts.verbose = true
			continue
		}

		matched := false
		for _, f := range []struct {
			name string
			set  func(string) error
		}{
			{"--config", func(v string) error { opts.config = v; return nil }},
			{"--scene", func(v string) error { opts.scene = v; return nil }},
			{"--out", func(v string) error { opts.out = v; return nil }},
			{"--format", func(v string) error { opts.format = strings.ToLower(v); return nil }},
			{"--logger", func(v string) error { opts.logger = v; return nil }},
			{"--time", func(v string) error {
				for _, part := range strings.Split(v, ",") {
					t, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
					if err != nil {
						return fmt.Errorf("invalid --time %q", part)
					}
					opts.times = append(opts.times, t)
				}
				return nil
			}},
		} {
			v, skip, ok, err := flagValue(args, i, f.name)
			if err != nil {
				return opts, err
			}
			if !ok {
				continue
			}
			if err := f.set(v); err != nil {
				return opts, err
			}
			i += skip
			matched = true
			break
		}
		if !matched {
			return opts, fmt.Errorf("unknown flag %q", args[i])
		}
	}

	if opts.config == "" {
		return opts, fmt.Errorf("--config is required\n\nUsage: nglrender render --config FILE --scene FILE")
	}
	if opts.scene == "" {
		return opts, fmt.Errorf("--scene is required\n\nUsage: nglrender render --config FILE --scene FILE")
	}
	if len(opts.times) == 0 {
		opts.times = []float64{0}
	}
	format, err := resolveFormat(opts.format, opts.out)
	if err != nil {
		return opts, err
	}
	opts.format = format
	return opts, nil
}

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}

	sink, flush, err := newSink(opts.logger, os.Stderr, opts.verbose)
	if err != nil {
		return err
	}
	defer flush()
	nopegl.SetLogger(diagnostics(os.Stderr, opts.verbose))
	if err := nopegl.Init(nopegl.InitOptions{Sink: sink}); err != nil {
		return err
	}

	r, err := newRenderer(opts)
	if err != nil {
		return err
	}
	defer r.close()

	if err := r.reload(); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return r.watch(ctx)
}

// renderer owns an offscreen context and its capture buffer.
type renderer struct {
	opts   renderOptions
	ctx    *nopegl.Context
	buf    *ngl.DirectBuffer
	width  int
	height int
}

func newRenderer(opts renderOptions, ctxOpts ...nopegl.Option) (*renderer, error) {
	m, err := hostconfig.Load(opts.config)
	if err != nil {
		return nil, err
	}
	if unknown := hostconfig.Unknown(m, ngl.ConfigFields); len(unknown) > 0 {
		nopegl.Logger().Warn("ignoring unknown configuration keys", "keys", unknown)
	}
	m["offscreen"] = true

	native := ngl.NewConfig()
	if err := marshal.Marshal(&native, ngl.ConfigFields, m); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if native.Width <= 0 || native.Height <= 0 {
		return nil, fmt.Errorf("configuration must set positive width and height")
	}

	ctx, err := nopegl.NewContext(ctxOpts...)
	if err != nil {
		return nil, err
	}
	r := &renderer{
		opts:   opts,
		ctx:    ctx,
		buf:    ngl.NewDirectBuffer(int(native.Width) * int(native.Height) * 4),
		width:  int(native.Width),
		height: int(native.Height),
	}
	m["captureBuffer"] = r.buf
	if err := ctx.Configure(m); err != nil {
		r.close()
		return nil, err
	}
	return r, nil
}

func (r *renderer) close() {
	r.ctx.Release()
	r.buf.Free()
}

// loadScene installs the scene file, or resets the scene when the file is
// empty.
func (r *renderer) loadScene() error {
	data, err := os.ReadFile(r.opts.scene)
	if err != nil {
		return fmt.Errorf("failed to read scene: %w", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return r.ctx.ResetScene()
	}
	return r.ctx.LoadScene(text)
}

func (r *renderer) renderAll() error {
	n := len(r.opts.times)
	for i, t := range r.opts.times {
		if err := r.ctx.Draw(t); err != nil {
			return err
		}
		path := frameName(r.opts.out, i, n)
		if err := writeFrame(path, r.opts.format, frameImage(r.buf.Bytes(), r.width, r.height)); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s (t=%g)\n", path, t)
	}
	return nil
}

func (r *renderer) reload() error {
	if err := r.loadScene(); err != nil {
		return err
	}
	return r.renderAll()
}

// watch re-renders on every write to the scene file until ctx is done.
// The directory is watched so editors that replace the file are seen.
func (r *renderer) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(r.opts.scene)); err != nil {
		return err
	}
	target := filepath.Clean(r.opts.scene)
	fmt.Fprintf(stdout, "watching %s (Ctrl+C to stop)\n", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != target || e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := r.reload(); err != nil {
				nopegl.Logger().Warn("scene reload failed", "scene", target, "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			nopegl.Logger().Warn("watch error", "err", err)
		}
	}
}
