// Package render turns recipes into the card formats the API serves:
// Markdown, HTML, plain share text and PDF.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pageza/pantrychef/backend/internal/parser"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Section headings of a recipe card.
const (
	IngredientsHeading = "Ingredients (for 2 people):"
	MethodHeading      = "Method:"
	ExtrasHeading      = "Optional Extras:"
)

// markdown allows the raw missing-ingredient span through.
var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))

// Body returns the card body (the three sections, no title) as Markdown.
// Missing ingredients keep their span marker as inline HTML.
func Body(r parser.AnnotatedRecipe) string {
	var b strings.Builder

	writeHeading(&b, IngredientsHeading)
	for _, ing := range r.Ingredients {
		text := Escape(ing.Text)
		if ing.Missing {
			text = `<span class="` + parser.MissingClass + `">` + text + `</span>`
		}
		b.WriteString("- " + text + "\n")
	}

	writeHeading(&b, MethodHeading)
	writeItems(&b, r.Method)

	writeHeading(&b, ExtrasHeading)
	writeItems(&b, r.Extras)

	return b.String()
}

func writeHeading(b *strings.Builder, heading string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString("#### " + heading + "\n\n")
}

func writeItems(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString("- " + Escape(item) + "\n")
	}
}

// Markdown returns the full card, title first.
func Markdown(r parser.AnnotatedRecipe) string {
	return "# " + Escape(r.Title) + "\n\n" + Body(r)
}

// HTML renders the card body to HTML.
func HTML(r parser.AnnotatedRecipe) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(Body(r)), &buf); err != nil {
		return "", fmt.Errorf("render recipe %q: %w", r.Title, err)
	}
	return buf.String(), nil
}

// Escape backslash-escapes Markdown punctuation so reply text is never
// read as markup.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune("\\`*_{}[]()#+-.!|<>&~\"'=:;,?/@$%^", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PlainText extracts readable text from card HTML: one line per heading or
// paragraph, list items prefixed with "- ". Markup that has none of those
// falls back to its collapsed text.
func PlainText(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse recipe html: %w", err)
	}

	var lines []string
	doc.Find("h1,h2,h3,h4,h5,h6,p,li").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		if name == "p" && s.ParentsFiltered("li").Length() > 0 {
			return
		}
		text := collapse(s.Text())
		if text == "" {
			return
		}
		if name == "li" {
			text = "- " + text
		}
		lines = append(lines, text)
	})

	if len(lines) == 0 {
		return collapse(doc.Text()), nil
	}
	return strings.Join(lines, "\n"), nil
}

// ShareText is the clipboard form of a card: title, blank line, body text.
func ShareText(title, content string) (string, error) {
	text, err := PlainText(content)
	if err != nil {
		return "", err
	}
	return title + "\n\n" + text, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
