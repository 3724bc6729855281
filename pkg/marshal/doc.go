// Package marshal copies host-side configuration values into fixed-layout
// native parameter blocks.
//
// A marshal is driven by a table of FieldDescriptor values. Each descriptor
// names a host property, the TypeTag it is read as, and the byte offset of the
// destination field inside the native struct. Host objects only need to
// implement Object; properties they do not provide, or provide with a value
// that cannot be read as the descriptor's type, leave the destination field at
// its default.
//
//	var cfg ngl.Config = ngl.NewConfig()
//	err := marshal.Marshal(&cfg, ngl.ConfigFields, marshal.Map{
//	    "width":      64,
//	    "height":     64,
//	    "offscreen":  true,
//	    "clearColor": []float32{1, 0, 0, 1},
//	})
//
// Tables are static: adding a property means appending a descriptor.
package marshal
