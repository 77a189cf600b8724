package page

import (
	"strings"

	"golang.org/x/net/html"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "\"", "&quot;")
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements hold text that is written back unescaped.
var rawTextElements = map[string]bool{
	"script": true, "style": true, "textarea": true,
}

// prettify serializes the tree with every tag, comment and text line on its
// own line, indented one space per level. Text is trimmed line by line and
// blank text is dropped.
func prettify(root *html.Node) string {
	var b strings.Builder
	writeNode(&b, root, 0)
	return b.String()
}

func writeNode(b *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat(" ", depth)
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(b, c, depth)
		}
	case html.DoctypeNode:
		b.WriteString(indent + "<!DOCTYPE " + n.Data + ">\n")
	case html.CommentNode:
		b.WriteString(indent + "<!--" + n.Data + "-->\n")
	case html.TextNode:
		raw := n.Parent != nil && n.Parent.Type == html.ElementNode && rawTextElements[n.Parent.Data]
		for _, line := range strings.Split(n.Data, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !raw {
				line = textEscaper.Replace(line)
			}
			b.WriteString(indent + line + "\n")
		}
	case html.ElementNode:
		b.WriteString(indent + "<" + n.Data)
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + key
			}
			b.WriteString(" " + key + "=\"" + attrEscaper.Replace(a.Val) + "\"")
		}
		b.WriteString(">\n")
		if voidElements[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(b, c, depth+1)
		}
		b.WriteString(indent + "</" + n.Data + ">\n")
	}
}
