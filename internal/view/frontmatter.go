package view

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/gomarkdown/markdown"
	"github.com/mmarkdown/mmark/v2/mast"
)

var frontMatterDelimiter = []byte("%%%")

var errNoFrontMatter = errors.New("no front matter")

// FrontMatter is the mmark-style TOML title block that opens a view document.
type FrontMatter struct {
	*mast.TitleData
	Shell bool `toml:"shell"`
}

// parseFrontMatter splits the leading %%% block from the document body.
// Documents without a block return errNoFrontMatter and the whole input as body.
func parseFrontMatter(md []byte) (*FrontMatter, []byte, error) {
	md = markdown.NormalizeNewlines(md)
	trimmed := bytes.TrimLeft(md, "\n \t")
	if !bytes.HasPrefix(trimmed, frontMatterDelimiter) {
		return nil, md, errNoFrontMatter
	}

	rest := trimmed[len(frontMatterDelimiter):]
	end := bytes.Index(rest, frontMatterDelimiter)
	if end == -1 {
		return nil, nil, fmt.Errorf("unterminated front matter")
	}

	fm := &FrontMatter{TitleData: &mast.TitleData{}}
	if _, err := toml.Decode(string(rest[:end]), fm); err != nil {
		return nil, nil, fmt.Errorf("failed to decode front matter: %w", err)
	}
	if fm.Language == "" {
		fm.Language = "ko"
	}

	return fm, rest[end+len(frontMatterDelimiter):], nil
}
