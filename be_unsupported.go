//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package main

// word.go's Word type uses encoding/binary.LittleEndian lane accessors over
// a raw byte array, which assume a little-endian host.
var _ = "this core requires a little-endian architecture" + 1
