// Package section defines the fixed binary header of a grammar blob.
//
// A grammar blob is a 32-byte header followed by the payload: the packed
// grammar bit string, optionally compressed by a byte-level codec.
//
//	┌──────────────────────────────────────────────────────┐
//	│ Flag (4 bytes)                                       │
//	│  - Options (2): endianness bit, reserved bits, magic │
//	│  - SymbolWidth (1): bits per terminal, 1-32          │
//	│  - Compression (1): payload codec                    │
//	│ RuleCount (4 bytes)                                  │
//	│ BitLength (8 bytes): meaningful bits in the payload  │
//	│ SymbolCount (8 bytes): length of the expanded input  │
//	│ Checksum (8 bytes): xxHash64 of the expanded input   │
//	├──────────────────────────────────────────────────────┤
//	│ Payload (variable)                                   │
//	└──────────────────────────────────────────────────────┘
//
// The Options field is always stored little-endian so the endianness bit can
// be read before the byte order of the remaining fields is known.
package section
