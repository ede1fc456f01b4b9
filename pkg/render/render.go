// Package render converts article markdown to HTML and builds the table of
// contents from its headings.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/dcruzf/blog-data/pkg/langdetect"
)

// ErrRender indicates the markdown could not be converted.
var ErrRender = errors.New("markdown render failed")

// DefaultHighlightStyle is the chroma style used when highlighting is on.
const DefaultHighlightStyle = "github"

// Options configures a Renderer.
type Options struct {
	// UnsafeHTML passes raw HTML in the markdown through to the output.
	UnsafeHTML bool

	// Highlight enables chroma syntax highlighting of fenced code.
	Highlight bool

	// HighlightStyle names the chroma style.
	HighlightStyle string

	// DetectLanguage tags fenced code blocks that have no info string.
	DetectLanguage bool

	// TOCMin and TOCMax bound the heading levels listed in the TOC.
	TOCMin int
	TOCMax int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		UnsafeHTML:     true,
		HighlightStyle: DefaultHighlightStyle,
		TOCMin:         1,
		TOCMax:         6,
	}
}

// Heading is a heading found in a rendered document.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Result is a rendered document.
type Result struct {
	HTML     string
	TOC      string
	Headings []Heading
}

// Renderer converts markdown to HTML. It holds no per-document state and
// may be reused across documents, also from several goroutines.
type Renderer struct {
	opts     Options
	md       goldmark.Markdown
	detector *langdetect.Detector
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.TOCMin < 1 {
		opts.TOCMin = 1
	}
	if opts.TOCMax < opts.TOCMin || opts.TOCMax > 6 {
		opts.TOCMax = 6
	}
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = DefaultHighlightStyle
	}

	r := &Renderer{
		opts: opts,
		md:   newGoldmark(opts),
	}
	if opts.DetectLanguage {
		r.detector = langdetect.New()
	}
	return r
}

// Render converts body to HTML and builds its table of contents.
func (r *Renderer) Render(ctx context.Context, body []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled: %w", err)
	}

	if r.detector != nil {
		body = tagFences(r.md.Parser(), r.detector, body)
	}

	doc := r.md.Parser().Parse(
		text.NewReader(body),
		parser.WithContext(parser.NewContext(parser.WithIDs(newHeadingIDs()))),
	)

	headings := collectHeadings(doc, body)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, body, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	return &Result{
		HTML:     buf.String(),
		TOC:      buildTOC(headings, r.opts.TOCMin, r.opts.TOCMax),
		Headings: headings,
	}, nil
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmark(opts Options) goldmark.Markdown {
	extensions := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.Footnote,
		extension.DefinitionList,
	}
	if opts.Highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	var rendererOpts []goldmark.Option
	if opts.UnsafeHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	return goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
	}, rendererOpts...)...)
}

func collectHeadings(doc ast.Node, source []byte) []Heading {
	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		heading := Heading{Level: h.Level, Text: plainText(h, source)}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				heading.ID = string(b)
			}
		}
		headings = append(headings, heading)
		return ast.WalkSkipChildren, nil
	})
	return headings
}

func plainText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return string(bytes.TrimSpace(buf.Bytes()))
}
