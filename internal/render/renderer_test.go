package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pep299/template-blog-publisher/internal/logger/loggertest"
	"github.com/pep299/template-blog-publisher/internal/schema"
)

type fakeImages struct {
	fragment string
	err      error
	prompts  []string
}

func (f *fakeImages) Provision(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.fragment, f.err
}

var head = schema.Header{Title: "My Title", Intro: "I", Conclusion: "C"}

func one(h, c string) []schema.Section {
	return []schema.Section{{Heading: h, Content: c}}
}

func sampleDocuments() map[schema.Kind]schema.Document {
	return map[schema.Kind]schema.Document{
		schema.KindGeneral:         &schema.GeneralDocument{Header: head, Sections: one("A", "a")},
		schema.KindTop10List:       &schema.Top10Document{Header: head, Sections: one("A", "1. x")},
		schema.KindStepByStepGuide: &schema.StepByStepDocument{Header: head, Steps: one("A", "a")},
		schema.KindProsAndCons:     &schema.ProsAndConsDocument{Header: head, Pros: one("A", "a"), Cons: one("B", "b")},
		schema.KindCaseStudy: &schema.CaseStudyDocument{Header: head,
			Challenges: one("A", "a"), Strategies: one("B", "b"), Outcomes: one("C", "c"), Insights: one("D", "d")},
		schema.KindHowToTutorial: &schema.HowToTutorialDocument{Header: head,
			Prerequisites: one("P", "p"), ToolsNeeded: one("T", "t"), Steps: one("S", "s"),
			Checklist: []schema.ChecklistItem{{Item: "x", IsCompleted: true}}, Tips: one("Ti", "ti"), FAQs: one("F", "f")},
		schema.KindBeginnersGuide: &schema.BeginnersGuideDocument{Header: head,
			Prerequisites: one("P", "p"), KeyConcepts: one("K", "k"), Examples: one("E", "e"),
			StepByStepTutorial: one("S", "s"), CommonMistakes: one("M", "m"), FAQs: one("F", "f"), FurtherReading: one("R", "r")},
		schema.KindInDepthReview: &schema.InDepthReviewDocument{Header: head,
			Features: one("F", "f"), Benefits: one("B", "b"), Drawbacks: one("D", "d")},
		schema.KindMythsAndMisconceptions: &schema.MythsDocument{Header: head, Myths: one("M", "m")},
		schema.KindBenefitsOverview: &schema.BenefitsOverviewDocument{Header: head,
			Benefits:                   one("B", "b"),
			UseCases:                   []schema.RealWorldExample{{Title: "U", Description: "d", Impact: "i"}},
			Statistics:                 []schema.Statistic{{Description: "S", Value: "1"}},
			PotentialDrawbacks:         one("P", "p"),
			ComparisonWithAlternatives: one("C", "c"),
			FAQs:                       []schema.FAQItem{{Question: "Q", Answer: "A"}},
			TipsForMaximizingBenefits:  one("T", "t")},
		schema.KindExpertOpinions: &schema.ExpertOpinionsDocument{Header: head,
			ExpertQuotes:   []schema.ExpertQuote{{ExpertName: "N", ExpertTitle: "T", Organization: "O", Quote: "Q"}},
			Themes:         []string{"one"},
			FurtherReading: []string{"book"}},
	}
}

func TestRender_EveryKindHasLayout(t *testing.T) {
	docs := sampleDocuments()
	for _, k := range schema.Kinds() {
		doc, ok := docs[k]
		if !ok {
			t.Fatalf("no sample document for %s", k)
		}
		post := NewRenderer(&fakeImages{fragment: "IMG"}, nil).Render(context.Background(), doc, "go")
		if post.Title != "My Title" {
			t.Errorf("%s: Title = %q", k, post.Title)
		}
		if post.Kind != k {
			t.Errorf("%s: Kind = %s", k, post.Kind)
		}
		if !strings.Contains(post.Markup, "IMG") {
			t.Errorf("%s: image fragment missing", k)
		}
	}
}

func TestRender_ExactMarkup(t *testing.T) {
	tests := []struct {
		name string
		doc  schema.Document
		want string
	}{
		{
			name: "general",
			doc: &schema.GeneralDocument{Header: head, Sections: []schema.Section{
				{Heading: "A", Content: "a"}, {Heading: "B", Content: "b"},
			}},
			want: "I\n\n<!--more-->\n\nIMG<h3>A</h3>\n<p>a</p>\n\n<h3>B</h3>\n<p>b</p>\n\n<h3>Conclusion</h3>\nC",
		},
		{
			name: "top 10 list",
			doc:  &schema.Top10Document{Header: head, Sections: one("A", "1. x\n2. y")},
			want: "I\n\n<!--more-->\n\nIMG<h3>A</h3>\n<ul><li>1. x</li><li>2. y</li></ul>\n\n<h3>Conclusion</h3>\nC",
		},
		{
			name: "step by step",
			doc:  &schema.StepByStepDocument{Header: head, Steps: []schema.Section{{Heading: "A", Content: "a"}, {Heading: "B", Content: "b"}}},
			want: "I\n\n<!--more-->\n\nIMG<h3>A</h3>\n<p>a</p>\n<h3>B</h3>\n<p>b</p>\n<h2>Conclusion</h2>\n<p>C</p>\n",
		},
		{
			name: "pros and cons with empty cons",
			doc:  &schema.ProsAndConsDocument{Header: head, Pros: one("A", "a")},
			want: "I\n\n<!--more-->\n\nIMG<h2>Pros</h2>\n<ul>\n<li><strong>A</strong>: a</li>\n</ul>\n" +
				"<h2>Cons</h2>\n<ul>\n</ul>\n<h2>Conclusion</h2>\n<p>C</p>\n",
		},
		{
			name: "myths",
			doc:  &schema.MythsDocument{Header: head, Myths: one("M", "m")},
			want: "<p>I</p>\n\n<!--more-->\n\nIMG<!--more-->\n<!--more-->\n<h2>Myths and Misconceptions</h2>\n<h3>M</h3>\n<p>m</p>\n" +
				"<!--more-->\n<!--more-->\n<h2>Conclusion</h2>\n<p>C</p>\n",
		},
		{
			name: "expert opinions",
			doc: &schema.ExpertOpinionsDocument{Header: head,
				ExpertQuotes: []schema.ExpertQuote{
					{ExpertName: "Ada", ExpertTitle: "CTO", Organization: "Acme", Quote: "Ship it."},
					{ExpertName: "Bob", ExpertTitle: "CEO", Organization: "Beta", Quote: "Wait.", Context: "On launches"},
				},
				Themes:         []string{"speed", "care"},
				FurtherReading: []string{},
			},
			want: "<p>I</p>\n\n<!--more-->\n\nIMG" +
				"<!--more-->\n<!--more-->\n<h2>Expert Quotes</h2>\n" +
				"<b>Ada</b>, CTO at Acme\nQuote: Ship it.\n\n" +
				"<b>Bob</b>, CEO at Beta\nQuote: Wait.\nContext: On launches\n\n" +
				"<!--more-->\n<!--more-->\n<h2>Key Takeaways</h2>\n1. speed\n2. care\n" +
				"<!--more-->\n<!--more-->\n<h2>Further Reading</h2>\n" +
				"<!--more-->\n<!--more-->\n<h2>Conclusion</h2>\n<p>C</p>\n",
		},
		{
			name: "benefits overview containers",
			doc: &schema.BenefitsOverviewDocument{Header: head,
				UseCases:   []schema.RealWorldExample{{Title: "Shop", Description: "d", Impact: "i"}},
				Statistics: []schema.Statistic{{Description: "Users", Value: "10k"}},
				FAQs:       []schema.FAQItem{{Question: "Q?", Answer: "A."}},
			},
			want: "<p>I</p>\n\n<!--more-->\n\nIMG" +
				"<!--more-->\n<!--more-->\n<h2>Benefits</h2>\n" +
				"<!--more-->\n<!--more-->\n<h2>Use Cases</h2>\n<h3>Shop</h3>\n<p><strong>Description:</strong> d</p>\n<p><strong>Impact:</strong> i</p>\n" +
				"<!--more-->\n<!--more-->\n<h2>Statistics</h2>\n<ul>\n  <li><strong>Users:</strong> 10k</li>\n</ul>\n" +
				"<!--more-->\n<!--more-->\n<h2>Potential Drawbacks</h2>\n" +
				"<!--more-->\n<!--more-->\n<h2>Comparison With Alternatives</h2>\n" +
				"<!--more-->\n<!--more-->\n<h2>FAQs</h2>\n  <h3 class='faq-question'>Q?</h3>\n  <p class='faq-answer'>A.</p>\n" +
				"<!--more-->\n<!--more-->\n<h2>Tips for maximizing benefits</h2>\n" +
				"<!--more-->\n<!--more-->\n<h2>Conclusion</h2>\n<p>C</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := NewRenderer(&fakeImages{fragment: "IMG"}, nil).Render(context.Background(), tt.doc, "go")
			if diff := cmp.Diff(tt.want, post.Markup); diff != "" {
				t.Errorf("Markup mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_Checklist(t *testing.T) {
	doc := &schema.HowToTutorialDocument{Header: head, Checklist: []schema.ChecklistItem{
		{Item: "done", IsCompleted: true},
		{Item: "open", IsCompleted: false},
	}}
	post := NewRenderer(&fakeImages{fragment: "IMG"}, nil).Render(context.Background(), doc, "go")

	want := "<h2>Checklist</h2>\n<ul>\n<li><input type='checkbox' checked> done</li>\n<li><input type='checkbox' > open</li>\n</ul>\n"
	if !strings.Contains(post.Markup, want) {
		t.Errorf("checklist block missing from:\n%s", post.Markup)
	}
}

func TestRender_BreakMarkerCounts(t *testing.T) {
	want := map[schema.Kind]int{
		schema.KindGeneral:                1,
		schema.KindTop10List:              1,
		schema.KindStepByStepGuide:        1,
		schema.KindProsAndCons:            1,
		schema.KindCaseStudy:              1,
		schema.KindHowToTutorial:          15,
		schema.KindBeginnersGuide:         17,
		schema.KindInDepthReview:          9,
		schema.KindMythsAndMisconceptions: 5,
		schema.KindBenefitsOverview:       17,
		schema.KindExpertOpinions:         9,
	}
	r := NewRenderer(&fakeImages{fragment: "IMG"}, nil)
	for k, doc := range sampleDocuments() {
		post := r.Render(context.Background(), doc, "go")
		if got := strings.Count(post.Markup, breakMarker); got != want[k] {
			t.Errorf("%s: break markers = %d, want %d", k, got, want[k])
		}
	}
}

func TestRender_LongFormBreakPairs(t *testing.T) {
	const pair = breakMarker + "\n" + breakMarker + "\n"
	docs := sampleDocuments()
	tests := []struct {
		kind schema.Kind
		want string
	}{
		{
			kind: schema.KindHowToTutorial,
			want: "<p>I</p>\n\n<!--more-->\n\nIMG" +
				pair + "<h2>Prerequisites</h2>\n<h3>P</h3>\n<p>p</p>\n" +
				pair + "<h2>Tools Needed</h2>\n<h3>T</h3>\n<p>t</p>\n" +
				pair + "<h2>Steps</h2>\n<h3>S</h3>\n<p>s</p>\n" +
				pair + "<h2>Checklist</h2>\n<ul>\n<li><input type='checkbox' checked> x</li>\n</ul>\n" +
				pair + "<h2>Tips</h2>\n<h3>Ti</h3>\n<p>ti</p>\n" +
				pair + "<h2>FAQs</h2>\n<h3>F</h3>\n<p>f</p>\n" +
				pair + "<h2>Conclusion</h2>\n<p>C</p>\n",
		},
		{
			kind: schema.KindBeginnersGuide,
			want: "<p>I</p>\n\n<!--more-->\n\nIMG" +
				pair + "<h2>Prerequisites</h2>\n<h3>P</h3>\n<p>p</p>\n" +
				pair + "<h2>Key Concepts</h2>\n<h3>K</h3>\n<p>k</p>\n" +
				pair + "<h2>Examples</h2>\n<h3>E</h3>\n<p>e</p>\n" +
				pair + "<h2>Steps</h2>\n<h3>S</h3>\n<p>s</p>\n" +
				pair + "<h2>Common Mistakes</h2>\n<h3>M</h3>\n<p>m</p>\n" +
				pair + "<h2>FAQs</h2>\n<h3>F</h3>\n<p>f</p>\n" +
				pair + "<h2>Further Reading</h2>\n<h3>R</h3>\n<p>r</p>\n" +
				pair + "<h2>Conclusion</h2>\n<p>C</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			post := NewRenderer(&fakeImages{fragment: "IMG"}, nil).Render(context.Background(), docs[tt.kind], "go")
			if diff := cmp.Diff(tt.want, post.Markup); diff != "" {
				t.Errorf("markup mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer(&fakeImages{fragment: "IMG"}, nil)
	for k, doc := range sampleDocuments() {
		a := r.Render(context.Background(), doc, "go")
		b := r.Render(context.Background(), doc, "go")
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("%s: renders differ:\n%s", k, diff)
		}
	}
}

func TestRender_PromptUsesResolvedKind(t *testing.T) {
	images := &fakeImages{fragment: "IMG"}
	r := NewRenderer(images, nil)

	raw := []byte(`{"title":"T","intro":"I","conclusion":"C","sections":[]}`)
	if _, err := r.RenderRaw(context.Background(), raw, "unknown_kind", "Gardening"); err != nil {
		t.Fatalf("RenderRaw() error = %v", err)
	}
	want := []string{"Image of Gardening in context of general"}
	if diff := cmp.Diff(want, images.prompts); diff != "" {
		t.Errorf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_PlaceholderOnImageFailure(t *testing.T) {
	log, logs := loggertest.NewObserved()
	images := &fakeImages{err: errors.New("quota exceeded")}
	doc := &schema.GeneralDocument{Header: head, Sections: one("A", "a")}

	post := NewRenderer(images, log).Render(context.Background(), doc, "go")

	want := "I\n\n<!--more-->\n\n" + Placeholder + "<h3>A</h3>\n<p>a</p>\n\n<h3>Conclusion</h3>\nC"
	if diff := cmp.Diff(want, post.Markup); diff != "" {
		t.Errorf("markup mismatch (-want +got):\n%s", diff)
	}
	if post.Title != "My Title" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.HasImage {
		t.Error("HasImage = true")
	}
	if len(images.prompts) != 1 {
		t.Errorf("Provision called %d times, want 1", len(images.prompts))
	}
	if logs.FilterMessage("image provisioning failed, using placeholder").Len() != 1 {
		t.Errorf("warning not logged: %v", logs.All())
	}
}

func TestRender_NoImages(t *testing.T) {
	post := NewRenderer(NoImages{}, nil).Render(context.Background(), &schema.MythsDocument{Header: head}, "go")
	if !strings.Contains(post.Markup, Placeholder) {
		t.Errorf("placeholder missing from %q", post.Markup)
	}
}

func TestRenderRaw_ValidationPrecedesProvisioning(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		tag  string
	}{
		{"malformed", `{"title":`, "general"},
		{"missing field", `{"title":"T","intro":"I","conclusion":"C"}`, "general"},
		{"wrong type", `{"title":"T","intro":"I","conclusion":"C","myths":"nope"}`, "myths_and_misconceptions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := &fakeImages{fragment: "IMG"}
			_, err := NewRenderer(images, nil).RenderRaw(context.Background(), []byte(tt.raw), tt.tag, "go")
			if !schema.IsValidationError(err) {
				t.Fatalf("RenderRaw() error = %v, want validation error", err)
			}
			if len(images.prompts) != 0 {
				t.Errorf("Provision called %d times, want 0", len(images.prompts))
			}
		})
	}
}

func TestRenderRaw_TitleRoundTrip(t *testing.T) {
	title := `Ünïcode & "quotes" <b>raw</b>`
	raw := []byte(`{"title":"` + strings.ReplaceAll(title, `"`, `\"`) + `","intro":"I","conclusion":"C","myths":[]}`)
	post, err := NewRenderer(&fakeImages{fragment: "IMG"}, nil).RenderRaw(context.Background(), raw, "myths_and_misconceptions", "go")
	if err != nil {
		t.Fatalf("RenderRaw() error = %v", err)
	}
	if post.Title != title {
		t.Errorf("Title = %q, want %q", post.Title, title)
	}
}

func TestListMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mixed lines", "**Bold**\n1. First\n•Second", "<ul><b>Bold</b><li>1. First</li><li>Second</li></ul>"},
		{"escaped newlines", `1. One\n2. **Two**`, "<ul><li>1. One</li><li>2. <b>Two</b></li></ul>"},
		{"surrounding space", "  \n 3. Three \n", "<ul><li>3. Three</li></ul>"},
		{"plain text", "just text", "<ul>just text</ul>"},
		{"bullet with space", "•   spaced", "<ul><li>spaced</li></ul>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ListMarkup(tt.in); got != tt.want {
				t.Errorf("ListMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestImageProviderFunc(t *testing.T) {
	var got string
	p := ImageProviderFunc(func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return "<img/>", nil
	})
	post := NewRenderer(p, nil).Render(context.Background(), &schema.GeneralDocument{Header: head}, "Cats")
	if got != "Image of Cats in context of general" {
		t.Errorf("prompt = %q", got)
	}
	if !post.HasImage {
		t.Error("HasImage = false")
	}
}
