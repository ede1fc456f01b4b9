package render

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/dcruzf/blog-data/pkg/langdetect"
)

type fenceTag struct {
	offset int
	lang   string
}

// tagFences returns body with a detected language appended to every opening
// fence that has no info string. Blocks whose language cannot be determined
// are left alone.
func tagFences(p parser.Parser, detector *langdetect.Detector, body []byte) []byte {
	doc := p.Parse(text.NewReader(body))

	var tags []fenceTag
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok || block.Info != nil {
			return ast.WalkContinue, nil
		}

		lines := block.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		var code bytes.Buffer
		for i := range lines.Len() {
			seg := lines.At(i)
			code.Write(seg.Value(body))
		}

		lang, ok := detector.Detect(code.Bytes())
		if !ok {
			return ast.WalkContinue, nil
		}

		// The opening fence is the line before the first content line.
		offset := bytes.LastIndexByte(body[:lines.At(0).Start], '\n')
		if offset < 0 {
			return ast.WalkContinue, nil
		}
		if offset > 0 && body[offset-1] == '\r' {
			offset--
		}
		tags = append(tags, fenceTag{offset: offset, lang: lang})
		return ast.WalkSkipChildren, nil
	})

	if len(tags) == 0 {
		return body
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].offset > tags[j].offset })

	out := append([]byte(nil), body...)
	for _, tag := range tags {
		insert := []byte(tag.lang)
		out = append(out[:tag.offset], append(insert, out[tag.offset:]...)...)
	}
	return out
}
