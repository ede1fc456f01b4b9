package render

import (
	"strconv"

	"github.com/yuin/goldmark/ast"

	"github.com/dcruzf/blog-data/pkg/slug"
)

// headingIDs generates slug-based element ids, unique within one document.
type headingIDs struct {
	used map[string]struct{}
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: make(map[string]struct{})}
}

func (s *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base := slug.Make(string(value))
	if base == "" {
		if kind == ast.KindHeading {
			base = "heading"
		} else {
			base = "id"
		}
	}

	id := base
	for i := 1; ; i++ {
		if _, taken := s.used[id]; !taken {
			break
		}
		id = base + "-" + strconv.Itoa(i)
	}

	s.used[id] = struct{}{}
	return []byte(id)
}

func (s *headingIDs) Put(value []byte) {
	s.used[string(value)] = struct{}{}
}
