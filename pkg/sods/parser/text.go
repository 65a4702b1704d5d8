package parser

import (
	"strconv"
	"strings"

	"github.com/hrk/sods/pkg/sods/models"
	"go.uber.org/zap"
)

const (
	tagTextP         = "text:p"
	tagTextH         = "text:h"
	tagTextS         = "text:s"
	tagTextTab       = "text:tab"
	tagTextLineBreak = "text:line-break"
	tagAnnotation    = "office:annotation"
	tagDCDate        = "dc:date"
)

// Inline elements whose content is part of the paragraph text.
var inlineTags = []string{
	"text:span",
	"text:a",
	"text:meta",
	"text:ruby",
	"text:ruby-base",
	"text:date",
	"text:time",
	"text:sheet-name",
	"text:title",
	"text:file-name",
}

var paragraphTags = append([]string{TextNode, tagTextS, tagTextTab, tagTextLineBreak}, inlineTags...)

// readCellText assembles the paragraphs of a cell into one newline-joined
// string and attaches annotations. The text replaces the cell value only
// when the cell has no value or a string value.
func (d *sheetDecoder) readCellText(cell *Cursor, r *models.Range) {
	var b strings.Builder
	first := true

	for {
		el := cell.Next(tagTextP, tagTextH, tagAnnotation)
		if el == nil {
			break
		}
		if el.Tag() == tagAnnotation {
			r.SetAnnotation(d.readAnnotation(el))
			continue
		}

		if !first {
			b.WriteByte('\n')
		}
		first = false
		d.readParagraph(el, &b)
	}

	if b.Len() == 0 {
		return
	}
	switch r.Value().(type) {
	case nil, string:
		r.SetValue(b.String())
	}
}

// readParagraph appends the text of a paragraph, heading or inline element.
func (d *sheetDecoder) readParagraph(p *Cursor, b *strings.Builder) {
	for {
		el := p.Next(paragraphTags...)
		if el == nil {
			return
		}

		switch el.Tag() {
		case TextNode:
			b.WriteString(el.Text())
		case tagTextS:
			b.WriteString(strings.Repeat(" ", d.spaces(el)))
		case tagTextTab:
			b.WriteByte('\t')
		case tagTextLineBreak:
			b.WriteByte('\n')
		default:
			d.readParagraph(el, b)
		}
	}
}

// spaces returns the text:c count of a text:s element.
func (d *sheetDecoder) spaces(el *Cursor) int {
	v, ok := el.Attr("text:c")
	if !ok || v == "" {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > d.cfg.maxRepeat() {
		d.log.Warn("invalid number of characters", zap.String("value", v), zap.Error(err))
		return 1
	}
	return n
}

func (d *sheetDecoder) readAnnotation(el *Cursor) *models.Annotation {
	a := &models.Annotation{}
	var msg strings.Builder

	for {
		child := el.Next(tagDCDate, tagTextP)
		if child == nil {
			break
		}

		switch child.Tag() {
		case tagDCDate:
			raw := collectText(child)
			t, err := ParseDateTime(raw)
			if err != nil {
				d.log.Warn("invalid annotation date", zap.String("value", raw), zap.Error(err))
				continue
			}
			a.LastModified = &t
		case tagTextP:
			if msg.Len() > 0 {
				msg.WriteByte('\n')
			}
			d.readParagraph(child, &msg)
		}
	}

	a.Msg = msg.String()
	return a
}

// collectText concatenates the character data directly inside an element.
func collectText(el *Cursor) string {
	var b strings.Builder
	for t := el.Next(TextNode); t != nil; t = el.Next(TextNode) {
		b.WriteString(t.Text())
	}
	return b.String()
}
