// Package label implements resilient "value following a label" recovery from
// semi-structured directory markup. Directory pages label their fields with
// text like "Location:" or "Website:" but the surrounding structure shifts
// year to year, so recovery runs an ordered chain of strategies and takes the
// first non-empty result.
package label

import (
	"regexp"
	"strings"

	"github.com/playamaps/brc-directory/internal/htmldoc"
)

// DefaultKeywords is the recognized label vocabulary shared by the camp,
// artwork, and event pages. Values are clipped at the first occurrence of any
// of these so adjacent fields sharing one container do not bleed together.
var DefaultKeywords = []string{"Website", "Location", "Description", "Camp Events", "Artwork"}

// Extractor recovers label-tagged field values from a Document. It carries no
// entity-specific knowledge and is reused across camp, artwork, and event
// extraction.
type Extractor struct {
	keywords []string
	clipRe   *regexp.Regexp
	stopRe   *regexp.Regexp
}

// strategy attempts one recovery approach. The bool result reports whether a
// non-empty value was found.
type strategy func(doc *htmldoc.Document, labelRe *regexp.Regexp) (string, bool)

// New builds an Extractor with the given recognized keywords, or
// DefaultKeywords when none are supplied.
func New(keywords ...string) *Extractor {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	alt := strings.Join(quoted, "|")
	return &Extractor{
		keywords: keywords,
		clipRe:   regexp.MustCompile(`(?i)\b(?:` + alt + `)\s*:`),
		stopRe:   regexp.MustCompile(`(?i)^(?:` + alt + `)\s*:?`),
	}
}

// ValueAfterLabel returns the text value following the given label, e.g.
// "Location:". It never fails: an empty string means the field is absent.
// Strategies run in fixed order and the first non-empty result wins.
func (e *Extractor) ValueAfterLabel(doc *htmldoc.Document, lbl string) string {
	labelRe := prefixPattern(lbl)
	strategies := []strategy{
		e.fromTextNode,
		e.fromContainer,
	}
	for _, s := range strategies {
		if value, ok := s(doc, labelRe); ok {
			return value
		}
	}
	return ""
}

// IsLabelStart reports whether text begins with any recognized label keyword.
// Callers scanning forward siblings use it as their stop condition.
func (e *Extractor) IsLabelStart(text string) bool {
	return e.stopRe.MatchString(text)
}

// Clip truncates the value at the first occurrence of another recognized
// label keyword inside it.
func (e *Extractor) Clip(value string) string {
	if value == "" {
		return ""
	}
	if loc := e.clipRe.FindStringIndex(value); loc != nil {
		value = value[:loc[0]]
	}
	return strings.TrimSpace(value)
}

// fromTextNode locates a text node that begins with the label. The value is
// the remainder of that node's text or, when the node holds only the label,
// the joined text of its parent's following siblings up to the next labeled
// section. Some pages put label and value in separate sibling nodes, which is
// what the second half covers.
func (e *Extractor) fromTextNode(doc *htmldoc.Document, labelRe *regexp.Regexp) (string, bool) {
	nodes := doc.TextNodes(func(raw string) bool {
		return labelRe.MatchString(strings.TrimSpace(raw))
	})
	for _, tn := range nodes {
		full := tn.Text()
		value := e.Clip(strings.TrimSpace(labelRe.ReplaceAllString(full, "")))
		if value != "" {
			return value, true
		}

		parent := tn.Parent()
		if parent == nil {
			continue
		}
		var collected []string
		for _, sib := range parent.FollowingSiblings() {
			text := sib.Text()
			if e.IsLabelStart(text) {
				break
			}
			if text != "" {
				collected = append(collected, text)
			}
		}
		if len(collected) > 0 {
			if value := e.Clip(strings.Join(collected, " ")); value != "" {
				return value, true
			}
		}
	}
	return "", false
}

// fromContainer finds the first element whose full visible text begins with
// the label, strips the label, and falls back to the next sibling element's
// text when nothing remains.
func (e *Extractor) fromContainer(doc *htmldoc.Document, labelRe *regexp.Regexp) (string, bool) {
	node := doc.FirstElement(func(text string) bool {
		return labelRe.MatchString(text)
	})
	if node == nil {
		return "", false
	}

	value := e.Clip(strings.TrimSpace(labelRe.ReplaceAllString(node.Text(), "")))
	if value != "" {
		return value, true
	}

	if sib := node.NextElementSibling(); sib != nil {
		if value := e.Clip(sib.Text()); value != "" {
			return value, true
		}
	}
	return "", false
}

// prefixPattern matches the label, case-insensitively, at the start of a
// string with any trailing whitespace.
func prefixPattern(lbl string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(lbl) + `\s*`)
}
