// Package jsonapiyaml reads and writes JSON:API documents as YAML.
//
// YAML is bridged through the JSON encoding: Unmarshal turns the YAML tree
// into JSON and hands it to encoding/json, and Marshal turns the JSON
// encoding into a YAML tree. The JSON codecs of package jsonapi therefore
// apply unchanged, and mapping order in the output follows the JSON
// encoding.
package jsonapiyaml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unmarshal decodes the YAML document in data into v using v's JSON
// decoding.
func Unmarshal(data []byte, v any) error {
	b, err := ToJSON(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Marshal encodes v as JSON and returns the equivalent YAML document.
func Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return FromJSON(b)
}

// ToJSON converts a single YAML document into compact JSON.
//
// Aliases are expanded. An anchor referring to itself, excessive alias
// expansion and duplicate mapping keys are errors.
func ToJSON(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("jsonapiyaml: %w", err)
	}
	var buf bytes.Buffer
	if root.Kind == 0 {
		buf.WriteString("null")
		return buf.Bytes(), nil
	}
	c := converter{buf: &buf, active: map[*yaml.Node]bool{}}
	if err := c.write(&root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// converter walks a YAML node graph. active holds the anchored nodes on
// the current path; the counters implement the same alias expansion limit
// as yaml.v3's decoder.
type converter struct {
	buf        *bytes.Buffer
	active     map[*yaml.Node]bool
	aliasDepth int
	nodeCount  int
	aliasCount int
}

// allowedAliasRatio mirrors yaml.v3: small documents may be made almost
// entirely of alias expansions, large ones only a small fraction.
func allowedAliasRatio(nodeCount int) float64 {
	const low, high = 400000, 4000000
	switch {
	case nodeCount <= low:
		return 0.99
	case nodeCount >= high:
		return 0.10
	}
	return 0.99 - 0.89*(float64(nodeCount-low)/(high-low))
}

func (c *converter) write(n *yaml.Node) error {
	c.nodeCount++
	if c.aliasDepth > 0 {
		c.aliasCount++
	}
	if c.aliasCount > 100 && c.nodeCount > 1000 && float64(c.aliasCount)/float64(c.nodeCount) > allowedAliasRatio(c.nodeCount) {
		return fmt.Errorf("jsonapiyaml: line %d: document contains excessive aliasing", n.Line)
	}

	if n.Anchor != "" {
		c.active[n] = true
		defer delete(c.active, n)
	}

	buf := c.buf
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return c.write(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return fmt.Errorf("jsonapiyaml: line %d: unknown anchor %q", n.Line, n.Value)
		}
		if c.active[n.Alias] {
			return fmt.Errorf("jsonapiyaml: line %d: anchor %q contains itself", n.Line, n.Value)
		}
		c.aliasDepth++
		defer func() { c.aliasDepth-- }()
		return c.write(n.Alias)
	case yaml.MappingNode:
		seen := make(map[string]struct{}, len(n.Content)/2)
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("jsonapiyaml: line %d: mapping keys must be scalars", k.Line)
			}
			if k.ShortTag() == "!!merge" {
				return fmt.Errorf("jsonapiyaml: line %d: merge keys are not supported", k.Line)
			}
			if _, dup := seen[k.Value]; dup {
				return fmt.Errorf("jsonapiyaml: line %d: duplicate key %q", k.Line, k.Value)
			}
			seen[k.Value] = struct{}{}
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k.Value)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := c.write(v); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := c.write(item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		return writeScalar(buf, n)
	}
	return fmt.Errorf("jsonapiyaml: line %d: unsupported node kind %d", n.Line, n.Kind)
}

func writeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return fmt.Errorf("jsonapiyaml: line %d: %w", n.Line, err)
		}
		buf.WriteString(strconv.FormatBool(b))
		return nil
	case "!!int":
		if json.Valid([]byte(n.Value)) {
			buf.WriteString(n.Value)
			return nil
		}
		var i int64
		if err := n.Decode(&i); err != nil {
			return fmt.Errorf("jsonapiyaml: line %d: %w", n.Line, err)
		}
		buf.WriteString(strconv.FormatInt(i, 10))
		return nil
	case "!!float":
		if json.Valid([]byte(n.Value)) {
			buf.WriteString(n.Value)
			return nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return fmt.Errorf("jsonapiyaml: line %d: %w", n.Line, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("jsonapiyaml: line %d: %q has no JSON representation", n.Line, n.Value)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		return nil
	}
	b, err := json.Marshal(n.Value)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// FromJSON converts a single JSON value into a YAML document, keeping
// object member order.
func FromJSON(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	node, err := readNode(dec)
	if err != nil {
		return nil, fmt.Errorf("jsonapiyaml: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("jsonapiyaml: invalid JSON: trailing data")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{node}}); err != nil {
		return nil, fmt.Errorf("jsonapiyaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("jsonapiyaml: %w", err)
	}
	return buf.Bytes(), nil
}

func readNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", kt)
				}
				val, err := readNode(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		case '[':
			n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				item, err := readNode(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}, nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}
