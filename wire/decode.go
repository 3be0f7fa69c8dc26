package wire

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/signadot/dawm/debug"

	"github.com/goccy/go-yaml"
	"github.com/segmentio/encoding/json"
)

// Decode reads a wire document from JSON or YAML bytes. The input is decoded
// generically first and then checked field by field, so that a document of
// the wrong shape fails with a *MalformedError naming the offending path
// instead of silently zero-filling.
func Decode(data []byte) (*Doc, error) {
	var v any
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, malformed("$", "empty input")
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	} else if err := yaml.Unmarshal(trimmed, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	doc, err := DocFromValue(v)
	if err != nil {
		return nil, err
	}
	if debug.Wire() {
		debug.Logf("decoded wire doc: %d strings, %d nodes, content type %q", len(doc.Strings), len(doc.Nodes), doc.ContentType)
	}
	return doc, nil
}

// DocFromValue checks that v, a generically decoded value (maps, slices,
// numbers, strings), has the shape of a wire document and converts it.
func DocFromValue(v any) (*Doc, error) {
	const path = "$"
	m, err := asObject(v, path)
	if err != nil {
		return nil, err
	}
	doc := &Doc{}
	if doc.ContentType, err = optString(m, "contentType", path); err != nil {
		return nil, err
	}
	if doc.QuirksMode, err = optString(m, "quirksMode", path); err != nil {
		return nil, err
	}
	strs, err := reqArray(m, "strings", path)
	if err != nil {
		return nil, err
	}
	doc.Strings = make([]string, len(strs))
	for i, s := range strs {
		str, ok := s.(string)
		if !ok {
			return nil, malformed(index(path+".strings", i), "expected string, got %s", kindOf(s))
		}
		doc.Strings[i] = str
	}
	nodes, err := reqArray(m, "nodes", path)
	if err != nil {
		return nil, err
	}
	doc.Nodes = make([]Node, len(nodes))
	for i, n := range nodes {
		if err := nodeFromValue(n, index(path+".nodes", i), &doc.Nodes[i]); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func nodeFromValue(v any, path string, dst *Node) error {
	m, err := asObject(v, path)
	if err != nil {
		return err
	}
	id, err := reqUint(m, "id", path)
	if err != nil {
		return err
	}
	dst.ID = id
	nt, err := reqUint(m, "nodeType", path)
	if err != nil {
		return err
	}
	if !NodeType(nt).Valid() || nt > math.MaxUint8 {
		return malformed(path+".nodeType", "unknown node type %d", nt)
	}
	dst.NodeType = NodeType(nt)
	fields := []struct {
		name string
		dst  **uint32
	}{
		{"nodeName", &dst.NodeName},
		{"nodeValue", &dst.NodeValue},
		{"namespaceURI", &dst.NamespaceURI},
		{"parentNode", &dst.ParentNode},
		{"firstChild", &dst.FirstChild},
		{"nextSibling", &dst.NextSibling},
	}
	for _, f := range fields {
		if *f.dst, err = optUint(m, f.name, path); err != nil {
			return err
		}
	}
	attrs, present := m["attributes"]
	if !present || attrs == nil {
		return nil
	}
	arr, ok := attrs.([]any)
	if !ok {
		return malformed(path+".attributes", "expected array, got %s", kindOf(attrs))
	}
	dst.Attributes = make([]Attr, len(arr))
	for i, a := range arr {
		if err := attrFromValue(a, index(path+".attributes", i), &dst.Attributes[i]); err != nil {
			return err
		}
	}
	return nil
}

func attrFromValue(v any, path string, dst *Attr) error {
	m, err := asObject(v, path)
	if err != nil {
		return err
	}
	if dst.Name, err = reqUint(m, "name", path); err != nil {
		return err
	}
	if dst.NS, err = optUint(m, "ns", path); err != nil {
		return err
	}
	if dst.Value, err = optUint(m, "value", path); err != nil {
		return err
	}
	return nil
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func asObject(v any, path string) (map[string]any, error) {
	switch x := v.(type) {
	case map[string]any:
		return x, nil
	case map[any]any:
		res := make(map[string]any, len(x))
		for k, kv := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, malformed(path, "non-string key %v", k)
			}
			res[ks] = kv
		}
		return res, nil
	default:
		return nil, malformed(path, "expected object, got %s", kindOf(v))
	}
}

func reqArray(m map[string]any, field, path string) ([]any, error) {
	v, ok := m[field]
	if !ok || v == nil {
		return nil, malformed(path+"."+field, "missing required field")
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, malformed(path+"."+field, "expected array, got %s", kindOf(v))
	}
	return arr, nil
}

func optString(m map[string]any, field, path string) (string, error) {
	v, ok := m[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", malformed(path+"."+field, "expected string, got %s", kindOf(v))
	}
	return s, nil
}

func reqUint(m map[string]any, field, path string) (uint32, error) {
	v, ok := m[field]
	if !ok || v == nil {
		return 0, malformed(path+"."+field, "missing required field")
	}
	return toUint32(v, path+"."+field)
}

func optUint(m map[string]any, field, path string) (*uint32, error) {
	v, ok := m[field]
	if !ok || v == nil {
		return nil, nil
	}
	u, err := toUint32(v, path+"."+field)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func toUint32(v any, path string) (uint32, error) {
	var (
		i  int64
		ok = true
	)
	switch x := v.(type) {
	case float64:
		if x != math.Trunc(x) {
			return 0, malformed(path, "expected unsigned integer, got %v", x)
		}
		if x < 0 || x > math.MaxUint32 {
			return 0, malformed(path, "integer %v out of range", x)
		}
		return uint32(x), nil
	case uint64:
		if x > math.MaxUint32 {
			return 0, malformed(path, "integer %d out of range", x)
		}
		return uint32(x), nil
	case int64:
		i = x
	case int:
		i = int64(x)
	case uint32:
		return x, nil
	case int32:
		i = int64(x)
	default:
		ok = false
	}
	if !ok {
		return 0, malformed(path, "expected unsigned integer, got %s", kindOf(v))
	}
	if i < 0 || i > math.MaxUint32 {
		return 0, malformed(path, "integer %d out of range", i)
	}
	return uint32(i), nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	case float64, float32, int, int32, int64, uint32, uint64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
