package schema

// Kind identifies a content template. The string value is the tag stored in
// the blog_templates table and sent by the generator.
type Kind string

const (
	KindGeneral                Kind = "general"
	KindTop10List              Kind = "top_10_list"
	KindStepByStepGuide        Kind = "step_by_step_guide"
	KindProsAndCons            Kind = "pros_and_cons"
	KindCaseStudy              Kind = "case_study"
	KindHowToTutorial          Kind = "how_to_tutorial"
	KindBeginnersGuide         Kind = "beginners_guide"
	KindInDepthReview          Kind = "in_depth_review"
	KindMythsAndMisconceptions Kind = "myths_and_misconceptions"
	KindBenefitsOverview       Kind = "benefits_overview"
	KindExpertOpinions         Kind = "expert_opinions"
)

var allKinds = []Kind{
	KindGeneral,
	KindTop10List,
	KindStepByStepGuide,
	KindProsAndCons,
	KindCaseStudy,
	KindHowToTutorial,
	KindBeginnersGuide,
	KindInDepthReview,
	KindMythsAndMisconceptions,
	KindBenefitsOverview,
	KindExpertOpinions,
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// ParseKind looks up a tag without any fallback.
func ParseKind(tag string) (Kind, bool) {
	for _, k := range allKinds {
		if string(k) == tag {
			return k, true
		}
	}
	return "", false
}

// Resolve maps a tag to its kind. Unknown tags resolve to KindGeneral; this
// is the only place where that fallback happens.
func Resolve(tag string) Kind {
	if k, ok := ParseKind(tag); ok {
		return k
	}
	return KindGeneral
}

func (k Kind) String() string {
	return string(k)
}
