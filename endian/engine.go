// Package endian selects the byte order used for multi-byte container fields.
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so header
// code can both decode fields in place and append them to a buffer:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, header.Checksum)
//
// The returned engines are the stateless binary.LittleEndian and
// binary.BigEndian values and are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine is a byte order that can also append.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness reports the byte order of the host.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetEngine returns the big-endian engine when big is true, little-endian otherwise.
func GetEngine(big bool) EndianEngine {
	if big {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}
