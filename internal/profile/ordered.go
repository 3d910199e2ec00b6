package profile

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Ordered is a string-keyed map that remembers insertion order. Rendering
// walks automations and integrations in the order they were declared, so
// plain Go maps cannot be used for them.
//
// The zero value is an empty map ready for use.
type Ordered[V any] struct {
	m *orderedmap.OrderedMap[string, V]
}

// Set inserts or replaces key. Replacing keeps the original position.
func (o *Ordered[V]) Set(key string, value V) {
	if o.m == nil {
		o.m = orderedmap.New[string, V]()
	}
	o.m.Set(key, value)
}

// Get returns the value stored under key.
func (o Ordered[V]) Get(key string) (V, bool) {
	if o.m == nil {
		var zero V
		return zero, false
	}
	return o.m.Get(key)
}

// Has reports whether key is present.
func (o Ordered[V]) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of entries.
func (o Ordered[V]) Len() int {
	if o.m == nil {
		return 0
	}
	return o.m.Len()
}

// Keys returns the keys in insertion order.
func (o Ordered[V]) Keys() []string {
	if o.m == nil {
		return nil
	}
	keys := make([]string, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every entry in insertion order.
func (o Ordered[V]) Each(fn func(key string, value V)) {
	if o.m == nil {
		return
	}
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Clone copies the map. When cloneValue is nil values are copied shallowly.
func (o Ordered[V]) Clone(cloneValue func(V) V) Ordered[V] {
	var out Ordered[V]
	o.Each(func(key string, value V) {
		if cloneValue != nil {
			value = cloneValue(value)
		}
		out.Set(key, value)
	})
	return out
}

// MarshalYAML emits a mapping node that keeps insertion order.
func (o Ordered[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var encodeErr error
	o.Each(func(key string, value V) {
		if encodeErr != nil {
			return
		}
		var valueNode yaml.Node
		if err := valueNode.Encode(value); err != nil {
			encodeErr = fmt.Errorf("encode %s: %w", key, err)
			return
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&valueNode,
		)
	})
	if encodeErr != nil {
		return nil, encodeErr
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping node in document order. Duplicate keys are
// rejected.
func (o *Ordered[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	o.m = orderedmap.New[string, V]()
	if isNullNode(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if o.Has(key) {
			return fmt.Errorf("line %d: duplicate key %q", node.Content[i].Line, key)
		}
		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		o.m.Set(key, value)
	}
	return nil
}

// MarshalJSON emits a JSON object in insertion order.
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	if o.m == nil {
		return []byte("{}"), nil
	}
	return o.m.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object in document order.
func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	o.m = orderedmap.New[string, V]()
	return o.m.UnmarshalJSON(data)
}

func isNullNode(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") || node.Kind == 0
}
