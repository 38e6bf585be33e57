// Package endian provides byte order utilities for reading and patching Malie
// script containers.
//
// Every multi-byte integer in a container (string table counts, offset/length
// pairs, jump operands) is little-endian. The package exposes the same
// EndianEngine abstraction used by the encoders, plus bounds-checked peek
// helpers for the backward scanners in the locate package, which probe
// arbitrary positions and must never panic on a malformed stream.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(count))
//
//	if v, ok := endian.PeekUint32(engine, data, pos); ok && v == 0 {
//	    // zero count terminator found
//	}
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the byte order of
// every Malie container.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// PeekUint16 reads a uint16 at pos without advancing anything.
// It returns false when pos is negative or the read would run past data.
func PeekUint16(engine EndianEngine, data []byte, pos int) (uint16, bool) {
	if pos < 0 || pos+2 > len(data) {
		return 0, false
	}

	return engine.Uint16(data[pos : pos+2]), true
}

// PeekUint32 reads a uint32 at pos without advancing anything.
// It returns false when pos is negative or the read would run past data.
func PeekUint32(engine EndianEngine, data []byte, pos int) (uint32, bool) {
	if pos < 0 || pos+4 > len(data) {
		return 0, false
	}

	return engine.Uint32(data[pos : pos+4]), true
}

// IsNullUnit reports whether the 2-byte code unit at pos is 0x0000.
// Out-of-range positions are never null units.
func IsNullUnit(data []byte, pos int) bool {
	if pos < 0 || pos+2 > len(data) {
		return false
	}

	return data[pos] == 0 && data[pos+1] == 0
}
