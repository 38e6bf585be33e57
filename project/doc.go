// Package project dumps an opened container into a translation document and
// applies an edited document back.
//
// A Document lists the editable labels and the segments of every string table
// entry next to their original text. It is bound to one container by a BLAKE3
// digest of the container bytes, and every entry carries an xxHash of its
// original text so out-of-band edits to the originals are caught on Apply.
//
// Documents are serialized as YAML or CBOR. Plain YAML is written as-is so it
// can be edited in any text editor; everything else is wrapped in a small
// envelope and compressed:
//
//	"MLTP" | version(1) | format(1) | compression(1) | reserved(1) | body
package project
