package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pep299/template-blog-publisher/internal/schema"
)

const breakMarker = "<!--more-->"

var (
	boldPattern     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	numberedPattern = regexp.MustCompile(`^\d+\.`)
)

// ListMarkup converts loosely formatted list text into an unordered list.
// Numbered lines and bullet lines become items; other lines pass through.
func ListMarkup(content string) string {
	content = boldPattern.ReplaceAllString(content, "<b>$1</b>")
	content = strings.ReplaceAll(content, `\n`, "\n")
	content = strings.TrimSpace(content)

	var b strings.Builder
	b.WriteString("<ul>")
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case numberedPattern.MatchString(line):
			b.WriteString("<li>" + line + "</li>")
		case strings.HasPrefix(line, "•"):
			b.WriteString("<li>" + strings.TrimSpace(strings.TrimPrefix(line, "•")) + "</li>")
		default:
			b.WriteString(line)
		}
	}
	b.WriteString("</ul>")
	return b.String()
}

func sectionBody(items []schema.Section) string {
	var b strings.Builder
	for _, s := range items {
		fmt.Fprintf(&b, "<h3>%s</h3>\n<p>%s</p>\n", s.Heading, s.Content)
	}
	return b.String()
}

func labeledListBody(items []schema.Section) string {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, s := range items {
		fmt.Fprintf(&b, "<li><strong>%s</strong>: %s</li>\n", s.Heading, s.Content)
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func checklistBody(items []schema.ChecklistItem) string {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, c := range items {
		state := ""
		if c.IsCompleted {
			state = "checked"
		}
		fmt.Fprintf(&b, "<li><input type='checkbox' %s> %s</li>\n", state, c.Item)
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func examplesBody(items []schema.RealWorldExample) string {
	var b strings.Builder
	for _, e := range items {
		fmt.Fprintf(&b, "<h3>%s</h3>\n<p><strong>Description:</strong> %s</p>\n<p><strong>Impact:</strong> %s</p>\n",
			e.Title, e.Description, e.Impact)
	}
	return b.String()
}

func statisticsBody(items []schema.Statistic) string {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, s := range items {
		fmt.Fprintf(&b, "  <li><strong>%s:</strong> %s</li>\n", s.Description, s.Value)
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func faqBody(items []schema.FAQItem) string {
	var b strings.Builder
	for _, f := range items {
		fmt.Fprintf(&b, "  <h3 class='faq-question'>%s</h3>\n  <p class='faq-answer'>%s</p>\n", f.Question, f.Answer)
	}
	return b.String()
}

func quotesBody(items []schema.ExpertQuote) string {
	var b strings.Builder
	for _, q := range items {
		fmt.Fprintf(&b, "<b>%s</b>, %s at %s\nQuote: %s\n", q.ExpertName, q.ExpertTitle, q.Organization, q.Quote)
		if q.Context != "" {
			b.WriteString("Context: " + q.Context + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func numberedBody(items []string) string {
	var b strings.Builder
	for i, item := range items {
		b.WriteString(strconv.Itoa(i+1) + ". " + item + "\n")
	}
	return b.String()
}
