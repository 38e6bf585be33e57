// Package compress provides the codecs used for project archives.
//
// A project archive is a serialized translation document (YAML or CBOR).
// Documents are text-heavy and repetitive, so general-purpose compression
// shrinks them well:
//   - None: archive stays as serialized
//   - Zstd: best ratio, the default for archived projects
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//
// Codecs are looked up by format.CompressionType:
//
//	out, stats, err := compress.Compress(format.CompressionZstd, doc)
//	...
//	doc, err = compress.Decompress(format.CompressionZstd, out)
//
// Zstd uses klauspost/compress by default. Building with the gozstd tag (and
// cgo) switches to the valyala/gozstd bindings; both produce standard frames.
package compress
