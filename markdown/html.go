package markdown

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// RenderHTML renders the tree rooted at root as HTML. Paragraphs are separated by a
// line ending. Nodes with a Tag are wrapped into that element, so extension nodes need
// no renderer of their own.
func RenderHTML(root *Node) string {
	var sb strings.Builder
	renderHTML(&sb, root)
	return sb.String()
}

func renderHTML(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case KindRoot:
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte('\n')
			}
			renderHTML(sb, c)
		}
		return

	case KindText:
		sb.WriteString(htmlEscaper.Replace(n.Value))
		return

	case KindInlineCode:
		sb.WriteString("<code>")
		sb.WriteString(htmlEscaper.Replace(n.Value))
		sb.WriteString("</code>")
		return

	case KindLink:
		sb.WriteString(`<a href="`)
		sb.WriteString(htmlEscaper.Replace(n.URL))
		sb.WriteString(`">`)
		renderChildren(sb, n)
		sb.WriteString("</a>")
		return
	}

	if n.Tag == "" {
		if len(n.Children) == 0 {
			sb.WriteString(htmlEscaper.Replace(n.Value))
			return
		}

		renderChildren(sb, n)
		return
	}

	sb.WriteString("<" + n.Tag + ">")
	renderChildren(sb, n)
	sb.WriteString("</" + n.Tag + ">")
}

func renderChildren(sb *strings.Builder, n *Node) {
	for _, c := range n.Children {
		renderHTML(sb, c)
	}
}
