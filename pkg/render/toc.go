package render

import (
	"strings"

	"github.com/yuin/goldmark/util"
)

type tocNode struct {
	heading  Heading
	children []*tocNode
}

// buildTOC renders headings within [minLevel, maxLevel] as nested lists.
// A heading nests under the closest preceding heading of a lower level.
func buildTOC(headings []Heading, minLevel, maxLevel int) string {
	root := &tocNode{}
	stack := []*tocNode{root}

	for _, h := range headings {
		if h.Level < minLevel || h.Level > maxLevel {
			continue
		}
		for len(stack) > 1 && stack[len(stack)-1].heading.Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		node := &tocNode{heading: h}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, node)
		stack = append(stack, node)
	}

	var b strings.Builder
	b.WriteString("<div class=\"toc\">\n")
	if len(root.children) == 0 {
		b.WriteString("<ul></ul>\n")
	} else {
		writeTOCList(&b, root.children)
	}
	b.WriteString("</div>\n")
	return b.String()
}

func writeTOCList(b *strings.Builder, nodes []*tocNode) {
	b.WriteString("<ul>\n")
	for _, n := range nodes {
		b.WriteString("<li><a href=\"#")
		b.Write(util.EscapeHTML([]byte(n.heading.ID)))
		b.WriteString("\">")
		b.Write(util.EscapeHTML([]byte(n.heading.Text)))
		b.WriteString("</a>")
		if len(n.children) > 0 {
			b.WriteString("\n")
			writeTOCList(b, n.children)
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}
