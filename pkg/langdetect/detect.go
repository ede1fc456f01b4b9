// Package langdetect guesses the language of fenced code blocks that carry
// no info string, so they can be tagged and highlighted.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// DefaultCandidates are the enry language names the classifier chooses from.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// fenceTags maps enry names whose lower-cased form is not a usual fence tag.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fenceTags = map[string]string{
	"Shell":      "bash",
	"C++":        "cpp",
	"C#":         "csharp",
	"Emacs Lisp": "elisp",
	"Vim Script": "vim",
}

// Detector guesses code languages.
type Detector struct {
	candidates []string
	minLength  int
}

// Option configures a Detector.
type Option func(*Detector)

// WithCandidates restricts classification to the given enry language names.
func WithCandidates(names ...string) Option {
	return func(d *Detector) {
		d.candidates = append([]string(nil), names...)
	}
}

// WithMinLength sets the shortest sample (after trimming) worth classifying.
func WithMinLength(n int) Option {
	return func(d *Detector) {
		d.minLength = n
	}
}

// New creates a Detector.
func New(opts ...Option) *Detector {
	d := &Detector{
		candidates: DefaultCandidates,
		minLength:  4,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect is shorthand for New().Detect(code).
func Detect(code []byte) (string, bool) {
	return New().Detect(code)
}

// Detect returns a fence tag for code. The boolean is false when no
// language could be determined with confidence.
func (d *Detector) Detect(code []byte) (string, bool) {
	s := newSample(code)
	if len(s.trimmed) < d.minLength {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return FenceTag(lang), true
	}

	for _, r := range rules {
		if r.match(s) {
			return r.tag, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, d.candidates); safe && lang != "" {
		return FenceTag(lang), true
	}

	return "", false
}

// FenceTag converts an enry language name to the tag used after a code fence.
func FenceTag(lang string) string {
	if tag, ok := fenceTags[lang]; ok {
		return tag
	}
	return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
}

type sample struct {
	raw     []byte
	trimmed []byte
	text    string
	upper   string
}

func newSample(code []byte) sample {
	trimmed := bytes.TrimSpace(code)
	text := string(code)
	return sample{
		raw:     code,
		trimmed: trimmed,
		text:    text,
		upper:   strings.ToUpper(strings.TrimSpace(text)),
	}
}

type rule struct {
	tag   string
	match func(sample) bool
}

// rules run in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only rule table.
var rules = []rule{
	{tag: "go", match: func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("package "))
	}},
	{tag: "python", match: isPython},
	{tag: "html", match: func(s sample) bool {
		lower := bytes.ToLower(s.trimmed)
		for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(marker)) {
				return true
			}
		}
		return false
	}},
	{tag: "json", match: func(s sample) bool {
		return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
			bytes.Contains(s.trimmed, []byte(`"`))
	}},
	{tag: "dockerfile", match: func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
			(bytes.Contains(s.raw, []byte("\nFROM ")) && bytes.Contains(s.raw, []byte("\nRUN "))) ||
			(bytes.Contains(s.raw, []byte("WORKDIR ")) && bytes.Contains(s.raw, []byte("COPY ")))
	}},
	{tag: "sql", match: func(s sample) bool {
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(s.upper, kw) {
				return true
			}
		}
		return false
	}},
	{tag: "rust", match: func(s sample) bool {
		return strings.Contains(s.text, "fn main()") ||
			strings.Contains(s.text, "println!") ||
			strings.Contains(s.text, "let mut ")
	}},
	{tag: "javascript", match: func(s sample) bool {
		return strings.Contains(s.text, "=>") ||
			strings.Contains(s.text, "const ") ||
			strings.Contains(s.text, "console.log")
	}},
	{tag: "yaml", match: isYAML},
}

func isPython(s sample) bool {
	if strings.Contains(s.text, "def ") && strings.Contains(s.text, "):") {
		return true
	}
	// Go imports use "import (".
	if strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import (") {
		if strings.Contains(s.text, "from ") || bytes.HasPrefix(s.trimmed, []byte("import ")) {
			return true
		}
	}
	return strings.Contains(s.text, "__name__") || strings.Contains(s.text, "__main__")
}

// isYAML counts "key: value" and "- item" lines.
func isYAML(s sample) bool {
	count := 0
	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}
