// Package kv decodes the key-value formats written by the Steam client.
//
// Two independent decoders target the same tree type, Node:
//
//   - DecodeText reads the human-readable dialect used by libraryfolders.vdf
//     and appmanifest_*.acf files.
//   - DecodeBinary reads the framed binary dialect used by shortcuts.vdf.
//
// Neither decoder knows anything about the files' meaning; field extraction
// lives in package core.
package kv
