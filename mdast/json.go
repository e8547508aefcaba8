package mdast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// hPropertiesKey is the data key renderers read node properties from.
const hPropertiesKey = "hProperties"

// Decode reads a syntax tree in mdast JSON form.
func Decode(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("unable to decode syntax tree: %w", err)
	}
	return &root, nil
}

// Encode writes the tree rooted at n in mdast JSON form. Positive indent
// produces indented output.
func Encode(w io.Writer, n *Node, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("unable to encode syntax tree: %w", err)
	}
	return nil
}

type jsonPoint struct {
	Line   int  `json:"line"`
	Column int  `json:"column"`
	Offset *int `json:"offset,omitempty"`
}

type jsonPosition struct {
	Start jsonPoint `json:"start"`
	End   jsonPoint `json:"end"`
}

type jsonNode struct {
	Type       Kind                       `json:"type"`
	Depth      int                        `json:"depth,omitempty"`
	Ordered    *bool                      `json:"ordered,omitempty"`
	Start      *int                       `json:"start,omitempty"`
	Spread     *bool                      `json:"spread,omitempty"`
	Checked    *bool                      `json:"checked,omitempty"`
	Lang       string                     `json:"lang,omitempty"`
	Meta       string                     `json:"meta,omitempty"`
	URL        string                     `json:"url,omitempty"`
	Title      string                     `json:"title,omitempty"`
	Alt        string                     `json:"alt,omitempty"`
	Align      []*string                  `json:"align,omitempty"`
	Value      *string                    `json:"value,omitempty"`
	Attributes Attributes                 `json:"attributes,omitempty"`
	Children   *[]*Node                   `json:"children,omitempty"`
	Position   *jsonPosition              `json:"position,omitempty"`
	Data       map[string]json.RawMessage `json:"data,omitempty"`
}

func toJSONPoint(p Point) jsonPoint {
	jp := jsonPoint{Line: p.Line, Column: p.Column}
	if p.Offset >= 0 {
		offset := p.Offset
		jp.Offset = &offset
	}
	return jp
}

func fromJSONPoint(jp jsonPoint) Point {
	p := Point{Line: jp.Line, Column: jp.Column, Offset: -1}
	if jp.Offset != nil {
		p.Offset = *jp.Offset
	}
	return p
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := jsonNode{
		Type:       n.Kind,
		Depth:      n.Depth,
		Start:      n.Start,
		Checked:    n.Checked,
		Lang:       n.Lang,
		Meta:       n.Meta,
		URL:        n.URL,
		Title:      n.Title,
		Alt:        n.Alt,
		Attributes: n.Attributes,
	}

	switch n.Kind {
	case KindList:
		ordered, spread := n.Ordered, n.Spread
		out.Ordered, out.Spread = &ordered, &spread
	case KindListItem:
		spread := n.Spread
		out.Spread = &spread
	}
	if n.Kind.IsLiteral() {
		value := n.Value
		out.Value = &value
	}
	if !n.Kind.IsLeaf() || len(n.Children) > 0 {
		children := n.Children
		if children == nil {
			children = []*Node{}
		}
		out.Children = &children
	}
	for _, a := range n.Align {
		if a == "" {
			out.Align = append(out.Align, nil)
			continue
		}
		out.Align = append(out.Align, &a)
	}
	if n.Position != nil {
		out.Position = &jsonPosition{Start: toJSONPoint(n.Position.Start), End: toJSONPoint(n.Position.End)}
	}

	if len(n.data) > 0 || !n.Props.Empty() {
		out.Data = make(map[string]json.RawMessage, len(n.data)+1)
		for k, v := range n.data {
			out.Data[k] = v
		}
		if !n.Props.Empty() {
			props, err := n.Props.MarshalJSON()
			if err != nil {
				return nil, err
			}
			out.Data[hPropertiesKey] = props
		}
	}
	return marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in jsonNode
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if !in.Type.Valid() {
		return fmt.Errorf("unknown node type %q", in.Type)
	}

	*n = Node{
		Kind:       in.Type,
		Depth:      in.Depth,
		Start:      in.Start,
		Checked:    in.Checked,
		Lang:       in.Lang,
		Meta:       in.Meta,
		URL:        in.URL,
		Title:      in.Title,
		Alt:        in.Alt,
		Attributes: in.Attributes,
	}
	if in.Ordered != nil {
		n.Ordered = *in.Ordered
	}
	if in.Spread != nil {
		n.Spread = *in.Spread
	}
	if in.Value != nil {
		n.Value = *in.Value
	}
	if in.Children != nil {
		n.Children = make([]*Node, 0, len(*in.Children))
		for _, child := range *in.Children {
			if child != nil {
				n.Children = append(n.Children, child)
			}
		}
	}
	for _, a := range in.Align {
		if a == nil {
			n.Align = append(n.Align, "")
			continue
		}
		n.Align = append(n.Align, *a)
	}
	if in.Position != nil {
		n.Position = &Position{Start: fromJSONPoint(in.Position.Start), End: fromJSONPoint(in.Position.End)}
	}

	for k, v := range in.Data {
		if k == hPropertiesKey {
			props := NewProperties()
			if err := props.UnmarshalJSON(v); err != nil {
				return fmt.Errorf("bad %s of %s node: %w", hPropertiesKey, in.Type, err)
			}
			if !props.Empty() {
				n.Props = props
			}
			continue
		}
		if n.data == nil {
			n.data = make(map[string][]byte)
		}
		n.data[k] = v
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Pairs are written in order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writePair(buf, attr.Key, attr.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler keeping the order pairs appear
// in the source object.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	*a = nil
	return readObject(data, func(key string, raw json.RawMessage) error {
		value, err := scalarText(raw)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		*a = append(*a, Attribute{Key: key, Value: value})
		return nil
	})
}

// MarshalJSON implements json.Marshaler. Class is always written as a list.
func (p *Properties) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if k != ClassKey {
			if err := writePair(buf, k, p.values[k]); err != nil {
				return nil, err
			}
			continue
		}
		data, err := marshal(p.class)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`"` + ClassKey + `":`)
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Class could be either a list of
// tokens or a whitespace separated string.
func (p *Properties) UnmarshalJSON(data []byte) error {
	*p = Properties{values: make(map[string]string)}
	return readObject(data, func(key string, raw json.RawMessage) error {
		value, err := scalarText(raw)
		if err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		if key == ClassKey {
			p.AddClass(strings.Fields(value)...)
			return nil
		}
		p.Set(key, value)
		return nil
	})
}

// readObject walks JSON object members in document order. JSON null is
// treated as an empty object.
func readObject(data []byte, member func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := member(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// scalarText converts JSON scalar (or list of scalars) to its text form.
// Lists are joined with single spaces.
func scalarText(raw json.RawMessage) (string, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", err
	}

	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			data, err := json.Marshal(item)
			if err != nil {
				return "", err
			}
			s, err := scalarText(data)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " "), nil
	}
	return "", errors.New("unsupported value, expected string, number, boolean or list")
}

func writePair(buf *bytes.Buffer, key, value string) error {
	k, err := marshal(key)
	if err != nil {
		return err
	}
	v, err := marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// marshal is json.Marshal without HTML escaping.
func marshal(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
