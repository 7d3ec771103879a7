package kv

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
)

// Record tags of the binary dialect.
const (
	TypeObject byte = 0x00
	TypeString byte = 0x01
	TypeInt32  byte = 0x02
	TypeEnd    byte = 0x08
)

// DecodeBinary parses the binary dialect. The returned node is an unnamed
// object holding the top-level records. Integer records are stored as their
// unsigned decimal text.
//
// Any unknown tag or early end of data fails the whole input; there is no
// partial result.
func DecodeBinary(data []byte) (*Node, error) {
	root := NewObject("")
	stack := []*Node{root}
	pos := 0

	for len(stack) > 0 {
		if pos >= len(data) {
			return nil, &BinaryError{Offset: pos, Err: ErrTruncated}
		}
		tag := data[pos]
		at := pos
		pos++

		if tag == TypeEnd {
			stack = stack[:len(stack)-1]
			continue
		}

		top := stack[len(stack)-1]
		switch tag {
		case TypeObject, TypeString, TypeInt32:
		default:
			return nil, &BinaryError{Offset: at, Err: ErrUnknownType}
		}

		key, n, ok := cstring(data[pos:])
		if !ok {
			return nil, &BinaryError{Offset: len(data), Err: ErrTruncated}
		}
		pos += n

		switch tag {
		case TypeObject:
			obj := NewObject(key)
			top.Set(obj)
			stack = append(stack, obj)
		case TypeString:
			val, n, ok := cstring(data[pos:])
			if !ok {
				return nil, &BinaryError{Offset: len(data), Err: ErrTruncated}
			}
			pos += n
			top.Set(NewString(key, val))
		case TypeInt32:
			if len(data)-pos < 4 {
				return nil, &BinaryError{Offset: len(data), Err: ErrTruncated}
			}
			v := binary.LittleEndian.Uint32(data[pos:])
			pos += 4
			top.Set(NewString(key, strconv.FormatUint(uint64(v), 10)))
		}
	}

	return root, nil
}

// cstring reads a NUL terminated string and returns it together with the
// number of bytes consumed, terminator included.
func cstring(b []byte) (string, int, bool) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return "", 0, false
	}
	return strings.ToValidUTF8(string(b[:i]), "�"), i + 1, true
}

// EncodeBinary writes n in the binary dialect. String children whose key
// matches one of intKeys (ignoring case) are written as 32-bit integers. An
// unnamed object is written as its children followed by the closing tag, the
// inverse of DecodeBinary.
func EncodeBinary(n *Node, intKeys ...string) ([]byte, error) {
	ints := make(map[string]bool, len(intKeys))
	for _, k := range intKeys {
		ints[foldKey(k)] = true
	}

	var buf bytes.Buffer
	if err := writeBinaryObject(&buf, n, ints); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBinaryObject(buf *bytes.Buffer, n *Node, ints map[string]bool) error {
	for _, c := range n.children {
		if strings.IndexByte(c.Key, 0) >= 0 {
			return ErrUnsupportedEncoding
		}
		switch {
		case c.IsObject():
			buf.WriteByte(TypeObject)
			writeCString(buf, c.Key)
			if err := writeBinaryObject(buf, c, ints); err != nil {
				return err
			}
		case ints[foldKey(c.Key)]:
			v, err := strconv.ParseUint(c.value, 10, 32)
			if err != nil {
				return ErrUnsupportedEncoding
			}
			buf.WriteByte(TypeInt32)
			writeCString(buf, c.Key)
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(v))
			buf.Write(b[:])
		default:
			if strings.IndexByte(c.value, 0) >= 0 {
				return ErrUnsupportedEncoding
			}
			buf.WriteByte(TypeString)
			writeCString(buf, c.Key)
			writeCString(buf, c.value)
		}
	}
	buf.WriteByte(TypeEnd)
	return nil
}

func writeCString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
}
