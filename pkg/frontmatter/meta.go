package frontmatter

import (
	"bytes"
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled patterns.
var (
	metaBeginRe = regexp.MustCompile(`^-{3}(\s.*)?$`)
	metaEndRe   = regexp.MustCompile(`^(-{3}|\.{3})(\s.*)?$`)
	metaKeyRe   = regexp.MustCompile(`^[ ]{0,3}([A-Za-z0-9_-]+):\s*(.*)$`)
	metaMoreRe  = regexp.MustCompile(`^[ ]{4,}(.*)$`)
)

// scanMeta reads MultiMarkdown meta lines from the top of source.
// An optional "---" line may open the block; a blank line, "---" or "..."
// closes it. Scanning stops at the first line that is neither a key nor a
// continuation, and that line starts the body.
func scanMeta(source []byte) (Fields, []byte) {
	fields := Fields{}
	rest := source

	next := func() (string, []byte) {
		idx := bytes.IndexByte(rest, '\n')
		if idx < 0 {
			return strings.TrimRight(string(rest), "\r"), nil
		}
		return strings.TrimRight(string(rest[:idx]), "\r"), rest[idx+1:]
	}

	opened := false
	if len(rest) > 0 {
		if line, after := next(); metaBeginRe.MatchString(line) {
			rest = after
			opened = true
		}
	}

	key := ""
	for len(rest) > 0 {
		line, after := next()

		if strings.TrimSpace(line) == "" || metaEndRe.MatchString(line) {
			rest = after
			break
		}

		if m := metaKeyRe.FindStringSubmatch(line); m != nil {
			key = strings.ToLower(m[1])
			fields.add(key, strings.TrimSpace(m[2]))
			rest = after
			continue
		}

		if m := metaMoreRe.FindStringSubmatch(line); m != nil && key != "" {
			fields[key] = append(fields[key], strings.TrimSpace(m[1]))
			rest = after
			continue
		}

		break
	}

	if len(fields) == 0 && !opened {
		return fields, source
	}
	return fields, rest
}
