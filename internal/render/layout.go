package render

import (
	"fmt"
	"strings"

	"github.com/pep299/template-blog-publisher/internal/schema"
)

type conclusionStyle int

const (
	// <h3>Conclusion</h3> followed by the raw text.
	conclusionInline conclusionStyle = iota
	// <h2>Conclusion</h2> followed by a paragraph.
	conclusionParagraph
)

// block is one rendered body part. An empty label emits the body alone.
type block struct {
	label string
	body  string
}

// layout describes how a kind is composed; compose is the only place that
// turns a layout into markup.
type layout struct {
	wrapIntro  bool
	longForm   bool
	blocks     []block
	conclusion conclusionStyle
}

func listingBlocks(items []schema.Section, content func(string) string) []block {
	blocks := make([]block, len(items))
	for i, s := range items {
		blocks[i] = block{body: fmt.Sprintf("<h3>%s</h3>\n%s\n\n", s.Heading, content(s.Content))}
	}
	return blocks
}

func paragraph(s string) string {
	return "<p>" + s + "</p>"
}

func layoutFor(doc schema.Document) layout {
	switch d := doc.(type) {
	case *schema.GeneralDocument:
		return layout{blocks: listingBlocks(d.Sections, paragraph), conclusion: conclusionInline}
	case *schema.Top10Document:
		return layout{blocks: listingBlocks(d.Sections, ListMarkup), conclusion: conclusionInline}
	case *schema.StepByStepDocument:
		return layout{blocks: []block{{body: sectionBody(d.Steps)}}, conclusion: conclusionParagraph}
	case *schema.ProsAndConsDocument:
		return layout{
			blocks: []block{
				{"Pros", labeledListBody(d.Pros)},
				{"Cons", labeledListBody(d.Cons)},
			},
			conclusion: conclusionParagraph,
		}
	case *schema.CaseStudyDocument:
		return layout{
			blocks: []block{
				{"Challenges", labeledListBody(d.Challenges)},
				{"Strategies", labeledListBody(d.Strategies)},
				{"Outcomes", labeledListBody(d.Outcomes)},
				{"Insights", labeledListBody(d.Insights)},
			},
			conclusion: conclusionParagraph,
		}
	case *schema.HowToTutorialDocument:
		return longForm(
			block{"Prerequisites", sectionBody(d.Prerequisites)},
			block{"Tools Needed", sectionBody(d.ToolsNeeded)},
			block{"Steps", sectionBody(d.Steps)},
			block{"Checklist", checklistBody(d.Checklist)},
			block{"Tips", sectionBody(d.Tips)},
			block{"FAQs", sectionBody(d.FAQs)},
		)
	case *schema.BeginnersGuideDocument:
		return longForm(
			block{"Prerequisites", sectionBody(d.Prerequisites)},
			block{"Key Concepts", sectionBody(d.KeyConcepts)},
			block{"Examples", sectionBody(d.Examples)},
			block{"Steps", sectionBody(d.StepByStepTutorial)},
			block{"Common Mistakes", sectionBody(d.CommonMistakes)},
			block{"FAQs", sectionBody(d.FAQs)},
			block{"Further Reading", sectionBody(d.FurtherReading)},
		)
	case *schema.InDepthReviewDocument:
		return longForm(
			block{"Features", sectionBody(d.Features)},
			block{"Benefits", sectionBody(d.Benefits)},
			block{"Drawbacks", sectionBody(d.Drawbacks)},
		)
	case *schema.MythsDocument:
		return longForm(block{"Myths and Misconceptions", sectionBody(d.Myths)})
	case *schema.BenefitsOverviewDocument:
		return longForm(
			block{"Benefits", sectionBody(d.Benefits)},
			block{"Use Cases", examplesBody(d.UseCases)},
			block{"Statistics", statisticsBody(d.Statistics)},
			block{"Potential Drawbacks", sectionBody(d.PotentialDrawbacks)},
			block{"Comparison With Alternatives", sectionBody(d.ComparisonWithAlternatives)},
			block{"FAQs", faqBody(d.FAQs)},
			block{"Tips for maximizing benefits", sectionBody(d.TipsForMaximizingBenefits)},
		)
	case *schema.ExpertOpinionsDocument:
		return longForm(
			block{"Expert Quotes", quotesBody(d.ExpertQuotes)},
			block{"Key Takeaways", numberedBody(d.Themes)},
			block{"Further Reading", numberedBody(d.FurtherReading)},
		)
	default:
		panic(fmt.Sprintf("render: no layout for %T", doc))
	}
}

func longForm(blocks ...block) layout {
	return layout{wrapIntro: true, longForm: true, blocks: blocks, conclusion: conclusionParagraph}
}

func compose(l layout, head schema.Header, image string) string {
	var b strings.Builder

	intro := head.Intro
	if l.wrapIntro {
		intro = paragraph(intro)
	}
	b.WriteString(intro + "\n\n" + breakMarker + "\n\n" + image)

	for _, blk := range l.blocks {
		if l.longForm {
			b.WriteString(breakMarker + "\n" + breakMarker + "\n")
		}
		if blk.label != "" {
			b.WriteString("<h2>" + blk.label + "</h2>\n")
		}
		b.WriteString(blk.body)
	}

	if l.longForm {
		b.WriteString(breakMarker + "\n" + breakMarker + "\n")
	}
	switch l.conclusion {
	case conclusionInline:
		b.WriteString("<h3>Conclusion</h3>\n" + head.Conclusion)
	default:
		b.WriteString("<h2>Conclusion</h2>\n" + paragraph(head.Conclusion) + "\n")
	}
	return b.String()
}
