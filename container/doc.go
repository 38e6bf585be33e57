// Package container imports and exports Malie script containers.
//
// An Engine locates the regions of a container, decodes its label block and
// string table into one flat list of texts, and rebuilds the container from an
// edited list:
//
//	engine, _ := container.NewEngine(container.WithLogger(logger))
//	texts, err := engine.Import(data)
//	...
//	texts[0] = "edited"
//	out, err := engine.Export(texts)
//
// Import tries each locate strategy in order (trailing length field first, then
// the terminator scan). Export re-encodes labels, relocates bytecode jumps into
// the label block and re-encodes the string table. Unchanged entries are written
// from their original bytes, so exporting an unedited list reproduces the input.
package container
