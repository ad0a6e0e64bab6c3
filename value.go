package main

import (
	"fmt"
	"strconv"

	"github.com/shu-go/orderedmap"
	"gopkg.in/yaml.v3"
)

// Value is a node of a fragment or policy document: *Map, Seq or Scalar.
type Value interface {
	isValue()
}

// Map keeps keys in insertion order.
type Map struct {
	om *orderedmap.OrderedMap[string, Value]
}

type Seq []Value

// Scalar holds a string, int, float64, bool or nil.
type Scalar struct {
	V any
}

func (*Map) isValue()   {}
func (Seq) isValue()    {}
func (Scalar) isValue() {}

func NewMap() *Map {
	return &Map{om: orderedmap.New[string, Value]()}
}

func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	return m.om.Get(key)
}

func (m *Map) Set(key string, v Value) {
	m.om.Set(key, v)
}

func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.om.Keys()
}

func (m *Map) Len() int {
	return len(m.Keys())
}

// Clone copies the key list; child values are shared.
func (m *Map) Clone() *Map {
	c := NewMap()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		c.Set(k, v)
	}
	return c
}

// MapOf returns the mapping stored at key, or nil.
func (m *Map) MapOf(key string) *Map {
	v, _ := m.Get(key)
	mm, _ := v.(*Map)
	return mm
}

// SeqOf returns the sequence stored at key, or nil.
func (m *Map) SeqOf(key string) Seq {
	v, _ := m.Get(key)
	s, _ := v.(Seq)
	return s
}

// StringOf returns the scalar at key as a string.
func (m *Map) StringOf(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(Scalar)
	if !ok {
		return "", false
	}
	return s.String(), true
}

func (s Scalar) String() string {
	switch v := s.V.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int reports the scalar as an integer when it is one.
func (s Scalar) Int() (int, bool) {
	switch v := s.V.(type) {
	case int:
		return v, true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

func Str(s string) Scalar { return Scalar{V: s} }
func Int(i int) Scalar    { return Scalar{V: i} }

func Strings(ss ...string) Seq {
	seq := make(Seq, 0, len(ss))
	for _, s := range ss {
		seq = append(seq, Str(s))
	}
	return seq
}

// stringsOf flattens a sequence of scalars. Non-scalar items are skipped.
func stringsOf(v Value) []string {
	seq, ok := v.(Seq)
	if !ok {
		return nil
	}
	ss := make([]string, 0, len(seq))
	for _, item := range seq {
		if s, ok := item.(Scalar); ok {
			ss = append(ss, s.String())
		}
	}
	return ss
}

// maxDocumentNodes bounds alias expansion in one fragment.
const maxDocumentNodes = 10000

// listOf is stringsOf that also takes a lone scalar as a one-item list.
func listOf(v Value) []string {
	if s, ok := v.(Scalar); ok {
		if s.V == nil {
			return []string{}
		}
		return []string{s.String()}
	}
	return stringsOf(v)
}

// decodeDocument parses YAML (or JSON) content into a Value tree.
func decodeDocument(content []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		// empty document
		return NewMap(), nil
	}
	d := nodeDecoder{open: make(map[*yaml.Node]bool)}
	return d.decode(&doc)
}

// nodeDecoder converts yaml nodes. open holds the collections on the
// current path so an alias back into one of them is caught.
type nodeDecoder struct {
	open  map[*yaml.Node]bool
	count int
}

func (d *nodeDecoder) decode(n *yaml.Node) (Value, error) {
	d.count++
	if d.count > maxDocumentNodes {
		return nil, fmt.Errorf("line %d: document expands to more than %d nodes", n.Line, maxDocumentNodes)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewMap(), nil
		}
		return d.decode(n.Content[0])

	case yaml.AliasNode:
		if n.Alias == nil || d.open[n.Alias] {
			return nil, fmt.Errorf("line %d: recursive alias", n.Line)
		}
		return d.decode(n.Alias)

	case yaml.MappingNode:
		d.open[n] = true
		defer delete(d.open, n)

		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
			}
			if k.Tag == "!!merge" {
				return nil, fmt.Errorf("line %d: merge keys are not supported", k.Line)
			}
			child, err := d.decode(v)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, child)
		}
		return m, nil

	case yaml.SequenceNode:
		d.open[n] = true
		defer delete(d.open, n)

		seq := make(Seq, 0, len(n.Content))
		for _, c := range n.Content {
			child, err := d.decode(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, child)
		}
		return seq, nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Scalar{V: v}, nil
	}

	return nil, fmt.Errorf("line %d: unsupported node kind %v", n.Line, n.Kind)
}

// toNode converts a Value tree back into YAML, keeping key order.
func toNode(v Value) *yaml.Node {
	switch v := v.(type) {
	case *Map:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				toNode(child),
			)
		}
		return n

	case Seq:
		n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, c := range v {
			if _, scalar := c.(Scalar); !scalar {
				n.Style = 0
			}
			n.Content = append(n.Content, toNode(c))
		}
		return n

	case Scalar:
		n := &yaml.Node{}
		if err := n.Encode(v.V); err != nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Value: v.String()}
		}
		return n
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// toPlain converts a Value tree for encoding/json. Maps become ordered maps.
func toPlain(v Value) any {
	switch v := v.(type) {
	case *Map:
		om := orderedmap.New[string, any]()
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			om.Set(k, toPlain(child))
		}
		return om

	case Seq:
		items := make([]any, 0, len(v))
		for _, c := range v {
			items = append(items, toPlain(c))
		}
		return items

	case Scalar:
		return v.V
	}
	return nil
}
