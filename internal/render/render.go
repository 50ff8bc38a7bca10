// Package render provides markdown rendering for view documents.
package render

import (
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const parserExtensions = parser.Tables | parser.FencedCode | parser.Autolink | parser.Strikethrough |
	parser.SpaceHeadings | parser.HeadingIDs | parser.BackslashLineBreak | parser.DefinitionLists |
	parser.AutoHeadingIDs | parser.Footnotes | parser.OrderedListStart | parser.Attributes |
	parser.NonBlockingSpace

// Markdown renders md to HTML. Raw HTML in the source is dropped.
func Markdown(md []byte) []byte {
	md = markdown.NormalizeNewlines(md)

	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.SkipHTML | md_html.FootnoteReturnLinks,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			// Views render inside shells that already own the page heading.
			if heading, ok := node.(*ast.Heading); ok && heading.Level == 1 {
				heading.Level = 2
			}
			return ast.GoToNext, false
		},
	}

	doc := parser.NewWithExtensions(parserExtensions).Parse(md)
	return markdown.Render(doc, md_html.NewRenderer(opts))
}
