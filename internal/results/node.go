// Package results loads participant result documents and extracts values
// from records anywhere in their nesting.
package results

import (
	"encoding/json"
	"strconv"
)

// Node is a parsed JSON value: *Object, Array or Scalar
type Node interface {
	node()
}

// Member is a single key/value pair of an object
type Member struct {
	Key   string
	Value Node
}

// Object is a JSON object with its members in document order
type Object struct {
	Members []Member
}

// Array is a JSON array
type Array []Node

// ScalarKind tags the type of a scalar value
type ScalarKind int

const (
	KindNull ScalarKind = iota
	KindBool
	KindNumber
	KindString
)

// Scalar is a JSON leaf value
type Scalar struct {
	Kind   ScalarKind
	Bool   bool
	Number json.Number
	String string
}

func (*Object) node() {}
func (Array) node()   {}
func (Scalar) node()  {}

// Get returns the value for key. Later duplicates win, as in encoding/json.
func (o *Object) Get(key string) (Node, bool) {
	for i := len(o.Members) - 1; i >= 0; i-- {
		if o.Members[i].Key == key {
			return o.Members[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether the object has a member named key
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Float returns the numeric value of a number scalar
func (s Scalar) Float() (float64, bool) {
	if s.Kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(s.Number), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NumberValue returns the numeric value of n if it is a number scalar
func NumberValue(n Node) (float64, bool) {
	s, ok := n.(Scalar)
	if !ok {
		return 0, false
	}
	return s.Float()
}
