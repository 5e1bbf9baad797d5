// Package render builds the budget visualizations.
//
// Markup is assembled as a small tree of typed nodes and serialized in one
// place, so every piece of category-provided text goes through the same
// escaper. Only the package's own CSS and script constants are emitted raw.
package render

import (
	"html/template"
	"strings"
)

// Node is a piece of markup.
type Node interface {
	render(b *strings.Builder)
}

// Attr is a single element attribute. Values are always escaped.
type Attr struct {
	Key   string
	Value string
}

// Element is a tag with attributes and children.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

// Text is escaped character data.
type Text string

// trusted is markup owned by this package (styles, scripts, doctype).
type trusted string

func (t Text) render(b *strings.Builder) {
	b.WriteString(template.HTMLEscapeString(string(t)))
}

func (t trusted) render(b *strings.Builder) {
	b.WriteString(string(t))
}

func (e *Element) render(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(template.HTMLEscapeString(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if isVoid(e.Tag) {
		return
	}
	for _, c := range e.Children {
		if c != nil {
			c.render(b)
		}
	}
	b.WriteString("</")
	b.WriteString(e.Tag)
	b.WriteByte('>')
}

// Attr appends an attribute and returns the element for chaining.
func (e *Element) Attr(key, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

// Append adds children.
func (e *Element) Append(children ...Node) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// El creates an element.
func El(tag string, children ...Node) *Element {
	return &Element{Tag: tag, Children: children}
}

// Box is a div with a class.
func Box(class string, children ...Node) *Element {
	return El("div", children...).Attr("class", class)
}

// Styled is a div with a class and an inline style.
func Styled(class, style string, children ...Node) *Element {
	return Box(class, children...).Attr("style", style)
}

// Render serializes a node tree.
func Render(n Node) string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func isVoid(tag string) bool {
	switch tag {
	case "meta", "link", "br", "img", "hr", "input":
		return true
	}
	return false
}
