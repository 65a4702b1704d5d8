// Package parser decodes the XML parts of an OpenDocument spreadsheet.
package parser

import (
	"encoding/xml"
	"io"
	"slices"
)

// TextNode is the pseudo tag that makes Next return character data.
const TextNode = "#text"

type eventKind int

const (
	startEvent eventKind = iota
	endEvent
	textEvent
)

type event struct {
	kind  eventKind
	name  string
	attrs map[string]string
	text  string
}

// reader turns decoder tokens into a flat stream of start, end and text
// events. Character data is passed through untrimmed; comments, processing
// instructions and directives produce no events.
type reader struct {
	dec   *xml.Decoder
	queue []event
	eof   bool
	err   error
}

// qualifiedName returns "prefix:local" as written in the document.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func (r *reader) fill() {
	// RawToken keeps prefixes as written instead of resolving them to
	// namespace URIs, and still reports self-closing tags as start and end.
	token, err := r.dec.RawToken()
	if err == io.EOF {
		r.eof = true
		return
	}
	if err != nil {
		r.err = err
		return
	}

	switch t := token.(type) {
	case xml.StartElement:
		start := event{kind: startEvent, name: qualifiedName(t.Name)}
		if len(t.Attr) > 0 {
			start.attrs = make(map[string]string, len(t.Attr))
			for _, attr := range t.Attr {
				start.attrs[qualifiedName(attr.Name)] = attr.Value
			}
		}
		r.queue = append(r.queue, start)
	case xml.EndElement:
		r.queue = append(r.queue, event{kind: endEvent, name: qualifiedName(t.Name)})
	case xml.CharData:
		r.queue = append(r.queue, event{kind: textEvent, text: string(t)})
	}
}

func (r *reader) peek() bool {
	for len(r.queue) == 0 {
		if r.eof || r.err != nil {
			return false
		}
		r.fill()
	}
	return true
}

func (r *reader) next() (event, bool) {
	if !r.peek() {
		return event{}, false
	}
	ev := r.queue[0]
	r.queue[0] = event{}
	r.queue = r.queue[1:]
	return ev, true
}

// skipElement consumes events up to and including the end of the element
// whose start was just read.
func (r *reader) skipElement() {
	depth := 1
	for depth > 0 {
		ev, ok := r.next()
		if !ok {
			return
		}
		switch ev.kind {
		case startEvent:
			depth++
		case endEvent:
			depth--
		}
	}
}

// Cursor is a forward-only view over the children of one XML element.
//
// A cursor never reads past the end of its own element. Children that are
// not asked for are skipped together with their subtrees, so parsers can be
// written as nested loops over Next without tracking depth.
type Cursor struct {
	r     *reader
	tag   string
	attrs map[string]string
	text  string
	done  bool
	child *Cursor
}

// Open returns the root cursor of an XML document. An empty stream yields
// a nil cursor and a nil error.
func Open(r io.Reader) (*Cursor, error) {
	rd := &reader{dec: xml.NewDecoder(r)}
	if !rd.peek() {
		return nil, rd.err
	}
	return &Cursor{r: rd}, nil
}

// Tag returns the qualified name of the element ("table:table-cell"),
// TextNode for character data, or "" for the document root.
func (c *Cursor) Tag() string {
	return c.tag
}

// Attr returns the value of an attribute by qualified name.
func (c *Cursor) Attr(name string) (string, bool) {
	v, ok := c.attrs[name]
	return v, ok
}

// Attrs returns all attributes of the element. The map must not be modified.
func (c *Cursor) Attrs() map[string]string {
	return c.attrs
}

// Text returns the character data of a TextNode cursor.
func (c *Cursor) Text() string {
	return c.text
}

// HasNext reports whether the end of the element has not been reached yet.
func (c *Cursor) HasNext() bool {
	return !c.done
}

// Err returns the first decoding error seen by any cursor of the document.
func (c *Cursor) Err() error {
	return c.r.err
}

// Next advances to the next child whose tag is one of tags and returns a
// cursor scoped to it. It returns nil once the element ends, and keeps
// returning nil afterwards. A child cursor still open from a previous call
// is drained first.
func (c *Cursor) Next(tags ...string) *Cursor {
	if c.done {
		return nil
	}
	if c.child != nil {
		c.child.Skip()
		c.child = nil
	}

	for {
		ev, ok := c.r.next()
		if !ok {
			c.done = true
			return nil
		}

		switch ev.kind {
		case startEvent:
			if slices.Contains(tags, ev.name) {
				c.child = &Cursor{r: c.r, tag: ev.name, attrs: ev.attrs}
				return c.child
			}
			c.r.skipElement()
		case endEvent:
			c.done = true
			return nil
		case textEvent:
			if slices.Contains(tags, TextNode) {
				return &Cursor{r: c.r, tag: TextNode, text: ev.text, done: true}
			}
		}
	}
}

// Skip consumes the rest of the element.
func (c *Cursor) Skip() {
	for c.Next() != nil {
	}
}
