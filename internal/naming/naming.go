// Package naming builds candidate screenshot URLs from a project
// identifier following the site's asset layout convention.
package naming

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"showcase/internal/errs"
	"showcase/internal/media"
)

// DefaultTemplate matches the site's existing "<Name>Shot0<index>" assets.
const DefaultTemplate = "{{.Base}}/images/{{.Name}}Shot0{{.Index}}{{.Ext}}"

// Variant is a case transformation applied to a project identifier.
type Variant string

const (
	Original   Variant = "original"
	Lower      Variant = "lower"
	LowerFirst Variant = "lower-first"
	Title      Variant = "title"
)

// DefaultVariants is the fixed probe priority order.
var DefaultVariants = []Variant{Original, Lower, LowerFirst, Title}

// Apply returns the project identifier transformed by v.
func (v Variant) Apply(id string) string {
	switch v {
	case Lower:
		return strings.ToLower(id)
	case LowerFirst:
		return mapFirst(id, unicode.ToLower)
	case Title:
		return mapFirst(strings.ToLower(id), unicode.ToUpper)
	default:
		return id
	}
}

func mapFirst(s string, fn func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(fn(r)) + s[size:]
}

// ParseVariant validates a variant name from configuration.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case Original, Lower, LowerFirst, Title:
		return v, nil
	}
	return "", fmt.Errorf("unknown name variant %q", s)
}

// Fields is the data a URL template is executed against.
type Fields struct {
	Base  string
	Name  string
	Index string
	Ext   string
}

// Scheme is a compiled asset naming convention.
type Scheme struct {
	base       string
	pad        int
	variants   []Variant
	extensions []string
	tmpl       *template.Template
}

// Options configures a Scheme. Zero values fall back to the defaults.
type Options struct {
	Base       string
	Template   string
	PadWidth   int
	Variants   []Variant
	Extensions []string
}

// New compiles a naming scheme.
func New(opts Options) (*Scheme, error) {
	text := opts.Template
	if text == "" {
		text = DefaultTemplate
	}
	tmpl, err := template.New("shot").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidTemplate, err)
	}
	if opts.PadWidth < 0 {
		return nil, fmt.Errorf("%w: negative pad width %d", errs.ErrInvalidTemplate, opts.PadWidth)
	}

	s := &Scheme{
		base:       strings.TrimSuffix(opts.Base, "/"),
		pad:        opts.PadWidth,
		variants:   opts.Variants,
		extensions: opts.Extensions,
		tmpl:       tmpl,
	}
	if len(s.variants) == 0 {
		s.variants = DefaultVariants
	}
	if len(s.extensions) == 0 {
		s.extensions = media.DefaultExtensions
	}

	// Execute once so field typos surface here rather than mid-probe.
	if _, err := s.URL("Probe", 1, s.extensions[0]); err != nil {
		return nil, err
	}
	return s, nil
}

// Variants returns the distinct names tried for id, in priority order.
func (s *Scheme) Variants(id string) []string {
	seen := make(map[string]bool, len(s.variants))
	names := make([]string, 0, len(s.variants))
	for _, v := range s.variants {
		n := v.Apply(id)
		if seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}

// Index formats a shot index using the configured zero padding.
func (s *Scheme) Index(shot int) string {
	idx := strconv.Itoa(shot)
	if len(idx) < s.pad {
		idx = strings.Repeat("0", s.pad-len(idx)) + idx
	}
	return idx
}

// URL renders the URL for one name, shot and extension.
func (s *Scheme) URL(name string, shot int, ext string) (string, error) {
	var buf bytes.Buffer
	err := s.tmpl.Execute(&buf, Fields{
		Base:  s.base,
		Name:  name,
		Index: s.Index(shot),
		Ext:   ext,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrInvalidTemplate, err)
	}
	return buf.String(), nil
}

// Candidates returns every URL to try for one shot, variant-major then
// extension, in probe order.
func (s *Scheme) Candidates(id string, shot int) []string {
	names := s.Variants(id)
	out := make([]string, 0, len(names)*len(s.extensions))
	for _, n := range names {
		for _, ext := range s.extensions {
			u, err := s.URL(n, shot, ext)
			if err != nil {
				// The template was executed successfully in New.
				continue
			}
			out = append(out, u)
		}
	}
	return out
}
