package sitemap

import (
	"bytes"
	"strings"
)

// textEscaper escapes character data for XML element content.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// attrEscaper escapes attribute values, which additionally need quote
// escaping because values are emitted inside double quotes.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// fragmentBuilder assembles a single XML fragment. All text and attribute
// values pass through escaping; CDATA sections split embedded "]]>"
// terminators so the output stays well formed for any input.
type fragmentBuilder struct {
	buf bytes.Buffer
}

// open appends an opening tag.
func (b *fragmentBuilder) open(name string) {
	b.buf.WriteByte('<')
	b.buf.WriteString(name)
	b.buf.WriteByte('>')
}

// close appends a closing tag.
func (b *fragmentBuilder) close(name string) {
	b.buf.WriteString("</")
	b.buf.WriteString(name)
	b.buf.WriteByte('>')
}

// text appends an element whose content is escaped character data.
func (b *fragmentBuilder) text(name, value string) {
	b.open(name)
	b.buf.WriteString(textEscaper.Replace(value))
	b.close(name)
}

// cdata appends an element whose content is wrapped in a CDATA section.
func (b *fragmentBuilder) cdata(name, value string) {
	b.open(name)
	b.buf.WriteString("<![CDATA[")
	// "]]>" inside the value would terminate the section early; split it
	// across two adjacent sections.
	b.buf.WriteString(strings.ReplaceAll(value, "]]>", "]]]]><![CDATA[>"))
	b.buf.WriteString("]]>")
	b.close(name)
}

// selfClosing appends a self-closing element with the given attributes,
// in order.
func (b *fragmentBuilder) selfClosing(name string, attrs []Attr) {
	b.buf.WriteByte('<')
	b.buf.WriteString(name)
	for _, a := range attrs {
		b.buf.WriteByte(' ')
		b.buf.WriteString(a.Name)
		b.buf.WriteString(`="`)
		b.buf.WriteString(attrEscaper.Replace(a.Value))
		b.buf.WriteByte('"')
	}
	b.buf.WriteString("/>")
}

// raw appends a pre-built string without escaping.
func (b *fragmentBuilder) raw(s string) {
	b.buf.WriteString(s)
}

// bytes returns the assembled fragment.
func (b *fragmentBuilder) bytes() []byte {
	return b.buf.Bytes()
}
