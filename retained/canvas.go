package retained

import (
	"fmt"
	"strconv"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Canvas is an <svg> root an icon mounts its graphic into. Elements selected
// through the canvas are bound to its loop, so their transitions are timed.
type Canvas struct {
	doc  *Document
	root *Element

	width, height float32
}

// NewCanvas creates a width x height <svg> root bound to loop.
// A nil loop makes every transition on the canvas apply immediately.
func NewCanvas(loop *Loop, width, height float32) (*Canvas, error) {
	markup := fmt.Sprintf(`<svg xmlns=%q width="%s" height="%s"></svg>`,
		svgNamespace, formatNumber(float64(width)), formatNumber(float64(height)))
	doc, err := ParseInline(markup)
	if err != nil {
		return nil, err
	}
	doc.loop = loop

	root := doc.Select("svg")
	if root == nil {
		return nil, fmt.Errorf("canvas markup has no svg root")
	}
	return &Canvas{doc: doc, root: root, width: width, height: height}, nil
}

// Root returns the <svg> element.
func (c *Canvas) Root() *Element {
	return c.root
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height float32) {
	return c.width, c.height
}

// SetViewBox sets the viewBox attribute.
func (c *Canvas) SetViewBox(x, y, width, height float32) {
	c.root.SetAttributes(map[string]string{
		"viewBox": formatNumber(float64(x)) + " " + formatNumber(float64(y)) + " " +
			formatNumber(float64(width)) + " " + formatNumber(float64(height)),
	})
}

// Append moves el under the canvas root.
func (c *Canvas) Append(el *Element) {
	c.root.AppendChild(el)
}

// Select returns the first element under the canvas matching selector, or nil.
func (c *Canvas) Select(selector string) *Element {
	return c.root.Select(selector)
}

// Loop returns the loop transitions on this canvas run on.
func (c *Canvas) Loop() *Loop {
	return c.doc.loop
}

// Markup renders the canvas.
func (c *Canvas) Markup() string {
	return c.root.Markup()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
