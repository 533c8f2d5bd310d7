// Package retained provides the retained-mode SVG surface that icons render into:
// documents parsed from markup, element handles with attribute mutation,
// timed attribute transitions, pointer event dispatch, and the single-threaded
// loop that drives timers and animations.
package retained

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed markup tree. Elements of one tree share a listener table
// and, once bound to a Canvas, the canvas' loop.
type Document struct {
	doc    *goquery.Document
	events *eventTable
	loop   *Loop
}

// ParseInline parses SVG (or HTML) markup into a document.
func ParseInline(markup string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	return &Document{doc: doc, events: newEventTable()}, nil
}

// Select returns the first element matching selector, or nil.
// Invalid selectors match nothing.
func (d *Document) Select(selector string) *Element {
	return d.wrap(d.doc.Find(selector))
}

// Loop returns the loop the document is bound to, or nil.
func (d *Document) Loop() *Loop {
	return d.loop
}

func (d *Document) wrap(sel *goquery.Selection) *Element {
	if sel.Length() == 0 {
		return nil
	}
	return &Element{node: sel.Get(0), doc: d}
}

// Element is a handle to one node of a Document. Handles are cheap values;
// two handles are the same element when Is reports true.
type Element struct {
	node *html.Node
	doc  *Document
}

// Node returns the underlying markup node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Document returns the document the handle resolves listeners and loop through.
func (e *Element) Document() *Document {
	return e.doc
}

// Tag returns the element name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Is reports whether both handles refer to the same node.
func (e *Element) Is(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.node == other.node
}

func (e *Element) sel() *goquery.Selection {
	return goquery.NewDocumentFromNode(e.node).Selection
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel().Attr(name)
}

// Attributes returns a copy of all attributes.
func (e *Element) Attributes() map[string]string {
	attrs := make(map[string]string, len(e.node.Attr))
	for _, a := range e.node.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

// SetAttributes sets every attribute in attrs. Existing attributes keep their
// position; new ones are appended in key order so markup output is stable.
func (e *Element) SetAttributes(attrs map[string]string) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := e.sel()
	for _, k := range keys {
		s.SetAttr(k, attrs[k])
	}
}

// HasClass reports whether the class attribute contains class.
func (e *Element) HasClass(class string) bool {
	return e.sel().HasClass(class)
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return &Element{node: p, doc: e.doc}
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// Select returns the first descendant matching selector, or nil.
func (e *Element) Select(selector string) *Element {
	return e.doc.wrap(e.sel().Find(selector))
}

// AppendChild moves child (and its subtree) under e. A child from another
// document joins e's tree: its listeners are merged into e's listener table and
// an unbound child document inherits e's loop.
func (e *Element) AppendChild(child *Element) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)

	if child.doc != nil && child.doc != e.doc {
		e.doc.events.adopt(child.doc.events)
		if child.doc.loop == nil {
			child.doc.loop = e.doc.loop
		}
	}
}

// Markup renders the element and its subtree.
func (e *Element) Markup() string {
	out, err := goquery.OuterHtml(e.sel())
	if err != nil {
		return ""
	}
	return out
}

// String implements fmt.Stringer for log output.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	if id, ok := e.Attr("id"); ok {
		return e.node.Data + "#" + id
	}
	return e.node.Data
}
