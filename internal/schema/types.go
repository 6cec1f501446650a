package schema

// Section is the generic heading/content block used by most body fields.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

type ChecklistItem struct {
	Item        string `json:"item"`
	IsCompleted bool   `json:"is_completed"`
}

type Statistic struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

type RealWorldExample struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ExpertQuote is an attributed quote. Context must be present in the input
// but may be empty.
type ExpertQuote struct {
	ExpertName   string `json:"expert_name"`
	ExpertTitle  string `json:"expert_title"`
	Organization string `json:"organization"`
	Quote        string `json:"quote"`
	Context      string `json:"context"`
}

// Header holds the fields shared by every document kind.
type Header struct {
	Title      string `json:"title"`
	Intro      string `json:"intro"`
	Conclusion string `json:"conclusion"`
}

// Document is a validated blog document. The set of implementations is
// closed: one variant per Kind.
type Document interface {
	Kind() Kind
	Head() Header
	document()
}

func (h Header) Head() Header { return h }
func (Header) document()      {}

type GeneralDocument struct {
	Header
	Sections []Section `json:"sections"`
}

type Top10Document struct {
	Header
	Sections []Section `json:"sections"`
}

type StepByStepDocument struct {
	Header
	Steps []Section `json:"steps"`
}

type ProsAndConsDocument struct {
	Header
	Pros []Section `json:"pros"`
	Cons []Section `json:"cons"`
}

type CaseStudyDocument struct {
	Header
	Challenges []Section `json:"challenges"`
	Strategies []Section `json:"strategies"`
	Outcomes   []Section `json:"outcomes"`
	Insights   []Section `json:"insights"`
}

type HowToTutorialDocument struct {
	Header
	Prerequisites []Section       `json:"prerequisites"`
	ToolsNeeded   []Section       `json:"tools_needed"`
	Steps         []Section       `json:"steps"`
	Checklist     []ChecklistItem `json:"checklist"`
	Tips          []Section       `json:"tips"`
	FAQs          []Section       `json:"faqs"`
}

type BeginnersGuideDocument struct {
	Header
	Prerequisites      []Section `json:"prerequisites"`
	KeyConcepts        []Section `json:"key_concepts"`
	Examples           []Section `json:"examples"`
	StepByStepTutorial []Section `json:"step_by_step_tutorial"`
	CommonMistakes     []Section `json:"common_mistakes"`
	FAQs               []Section `json:"faqs"`
	FurtherReading     []Section `json:"further_reading"`
}

type InDepthReviewDocument struct {
	Header
	Features  []Section `json:"features"`
	Benefits  []Section `json:"benefits"`
	Drawbacks []Section `json:"drawbacks"`
}

type MythsDocument struct {
	Header
	Myths []Section `json:"myths"`
}

type BenefitsOverviewDocument struct {
	Header
	Benefits                   []Section          `json:"benefits"`
	UseCases                   []RealWorldExample `json:"use_cases"`
	Statistics                 []Statistic        `json:"statistics"`
	PotentialDrawbacks         []Section          `json:"potential_drawbacks"`
	ComparisonWithAlternatives []Section          `json:"comparison_with_alternatives"`
	FAQs                       []FAQItem          `json:"faqs"`
	TipsForMaximizingBenefits  []Section          `json:"tips_for_maximizing_benefits"`
}

type ExpertOpinionsDocument struct {
	Header
	ExpertQuotes   []ExpertQuote `json:"expert_quotes"`
	Themes         []string      `json:"themes"`
	FurtherReading []string      `json:"further_reading"`
}

func (*GeneralDocument) Kind() Kind          { return KindGeneral }
func (*Top10Document) Kind() Kind            { return KindTop10List }
func (*StepByStepDocument) Kind() Kind       { return KindStepByStepGuide }
func (*ProsAndConsDocument) Kind() Kind      { return KindProsAndCons }
func (*CaseStudyDocument) Kind() Kind        { return KindCaseStudy }
func (*HowToTutorialDocument) Kind() Kind    { return KindHowToTutorial }
func (*BeginnersGuideDocument) Kind() Kind   { return KindBeginnersGuide }
func (*InDepthReviewDocument) Kind() Kind    { return KindInDepthReview }
func (*MythsDocument) Kind() Kind            { return KindMythsAndMisconceptions }
func (*BenefitsOverviewDocument) Kind() Kind { return KindBenefitsOverview }
func (*ExpertOpinionsDocument) Kind() Kind   { return KindExpertOpinions }
