// Package encoding decodes and re-encodes the text-bearing sections of a Malie
// script container.
//
// All container text is UTF-16LE without a BOM. Two sections carry it:
//
// Label block - a run of 0x0000-terminated labels, some followed by one padding
// unit. Bytecode addresses labels by absolute offset, so the encoder records
// where every label lands:
//
//	block, _ := encoding.DecodeLabels(data, regions.LabelStart, regions.LabelEnd)
//	enc := encoding.NewLabelEncoder(block.Start, block.Lead)
//	defer enc.Reset()
//	for i, entry := range block.Entries {
//	    _ = enc.Write(entry, texts[i])
//	}
//	labels, moved := enc.Bytes(), enc.Relocations()
//
// String table - a count, count (offset, length) pairs, the payload length and
// the payload, each string followed by a terminator:
//
//	strs, _ := encoding.DecodeStringTable(data, regions.OffsetTablePos, regions.StringTablePos)
//	table, _ := encoding.EncodeStringTable(strs, texts)
//
// Both encoders write the original code units back for entries whose text did not
// change, so decoding and re-encoding an untouched container is byte-identical.
package encoding
