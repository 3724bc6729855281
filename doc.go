// Package nopegl is the host-side boundary to the nope.gl rendering engine.
//
// A Context owns one native engine context and walks it through a fixed
// lifecycle:
//
//	Created -> Configured -> Running -> Released
//
// Configuration objects are marshaled into the engine's parameter block by
// name (see pkg/marshal and ngl.ConfigFields), scenes are loaded from their
// serialized text form, and every native status code is returned unchanged
// inside an *errors.Error.
//
// Init performs the one-time process setup: it registers the host runtime
// with the engine and the media framework and routes both of their logs to a
// logbridge.Sink. Without the native library (build tag "nopegl"), the
// pure-Go engine from pkg/softgl is used instead.
//
//	if err := nopegl.Init(nopegl.InitOptions{Sink: logbridge.SlogSink(nil)}); err != nil {
//		return err
//	}
//	ctx, err := nopegl.NewContext()
//	if err != nil {
//		return err
//	}
//	defer ctx.Release()
//
//	cfg := nopegl.DefaultConfig()
//	cfg.Offscreen, cfg.Width, cfg.Height = true, 64, 64
//	if err := ctx.Configure(&cfg); err != nil {
//		return err
//	}
package nopegl
