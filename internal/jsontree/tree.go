// Package jsontree parses JSON into a generic tree that keeps object key order.
//
// The archive header lists directory children in the order the writer emitted
// them, and listings preserve that order, so decoding into map[string]any is
// not an option.
package jsontree

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// Kind identifies the JSON type of a Node.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Node is one JSON value.
type Node struct {
	kind   Kind
	b      bool
	num    json.Number
	str    string
	items  []*Node
	keys   []string
	fields map[string]*Node
}

// Parse decodes a single JSON document.
//
// Duplicate object keys keep the position of their first occurrence and the
// value of their last, matching common JSON decoders.
func Parse(data []byte) (*Node, error) {
	if len(data) == 0 {
		return nil, errors.New("jsontree: empty document")
	}
	it := jsoniter.ParseBytes(jsoniter.ConfigCompatibleWithStandardLibrary, data)
	n := readNode(it)
	if it.Error != nil && !errors.Is(it.Error, io.EOF) {
		return nil, fmt.Errorf("jsontree: %w", it.Error)
	}
	if n == nil {
		return nil, errors.New("jsontree: invalid document")
	}
	// Only whitespace may follow the value.
	if it.WhatIsNext() != jsoniter.InvalidValue || !errors.Is(it.Error, io.EOF) {
		return nil, errors.New("jsontree: unexpected data after document")
	}
	return n, nil
}

func readNode(it *jsoniter.Iterator) *Node {
	switch it.WhatIsNext() {
	case jsoniter.ObjectValue:
		n := &Node{kind: KindObject, fields: make(map[string]*Node)}
		it.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			v := readNode(it)
			if v == nil {
				return false
			}
			if _, dup := n.fields[key]; !dup {
				n.keys = append(n.keys, key)
			}
			n.fields[key] = v
			return true
		})
		return n
	case jsoniter.ArrayValue:
		n := &Node{kind: KindArray}
		it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			v := readNode(it)
			if v == nil {
				return false
			}
			n.items = append(n.items, v)
			return true
		})
		return n
	case jsoniter.StringValue:
		return &Node{kind: KindString, str: it.ReadString()}
	case jsoniter.NumberValue:
		return &Node{kind: KindNumber, num: it.ReadNumber()}
	case jsoniter.BoolValue:
		return &Node{kind: KindBool, b: it.ReadBool()}
	case jsoniter.NilValue:
		it.ReadNil()
		return &Node{kind: KindNull}
	default:
		it.ReportError("readNode", "unexpected token")
		return nil
	}
}

// Kind returns the JSON type of the node.
func (n *Node) Kind() Kind {
	return n.kind
}

// Keys returns object keys in document order. It is nil for non-objects.
func (n *Node) Keys() []string {
	return n.keys
}

// Field returns the value stored under key in an object node.
func (n *Node) Field(key string) (*Node, bool) {
	v, ok := n.fields[key]
	return v, ok
}

// Items returns the elements of an array node.
func (n *Node) Items() []*Node {
	return n.items
}

// AsString returns the value of a string node.
func (n *Node) AsString() (string, bool) {
	return n.str, n.kind == KindString
}

// AsBool returns the value of a boolean node.
func (n *Node) AsBool() (bool, bool) {
	return n.b, n.kind == KindBool
}

// AsUint64 returns the value of a number node holding a non-negative integer.
func (n *Node) AsUint64() (uint64, bool) {
	if n.kind != KindNumber {
		return 0, false
	}
	v, err := strconv.ParseUint(string(n.num), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AsInt returns the value of a number node holding an integer that fits in int.
func (n *Node) AsInt() (int, bool) {
	if n.kind != KindNumber {
		return 0, false
	}
	v, err := strconv.ParseInt(string(n.num), 10, 0)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// HasOnlyKey reports whether n is an object whose key set is exactly {key}.
func (n *Node) HasOnlyKey(key string) bool {
	if n.kind != KindObject || len(n.keys) != 1 {
		return false
	}
	return n.keys[0] == key
}
