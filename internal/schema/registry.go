package schema

import (
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"
)

type fieldType int

const (
	fieldString fieldType = iota
	fieldSections
	fieldChecklist
	fieldStatistics
	fieldExamples
	fieldFAQs
	fieldQuotes
	fieldStrings
)

type field struct {
	name string
	typ  fieldType
}

type shape struct {
	body   []field
	newDoc func() Document
}

var headerFields = []field{
	{"title", fieldString},
	{"intro", fieldString},
	{"conclusion", fieldString},
}

func sections(names ...string) []field {
	out := make([]field, len(names))
	for i, n := range names {
		out[i] = field{n, fieldSections}
	}
	return out
}

var shapes = map[Kind]shape{
	KindGeneral: {
		body:   sections("sections"),
		newDoc: func() Document { return &GeneralDocument{} },
	},
	KindTop10List: {
		body:   sections("sections"),
		newDoc: func() Document { return &Top10Document{} },
	},
	KindStepByStepGuide: {
		body:   sections("steps"),
		newDoc: func() Document { return &StepByStepDocument{} },
	},
	KindProsAndCons: {
		body:   sections("pros", "cons"),
		newDoc: func() Document { return &ProsAndConsDocument{} },
	},
	KindCaseStudy: {
		body:   sections("challenges", "strategies", "outcomes", "insights"),
		newDoc: func() Document { return &CaseStudyDocument{} },
	},
	KindHowToTutorial: {
		body: []field{
			{"prerequisites", fieldSections},
			{"tools_needed", fieldSections},
			{"steps", fieldSections},
			{"checklist", fieldChecklist},
			{"tips", fieldSections},
			{"faqs", fieldSections},
		},
		newDoc: func() Document { return &HowToTutorialDocument{} },
	},
	KindBeginnersGuide: {
		body: sections("prerequisites", "key_concepts", "examples", "step_by_step_tutorial",
			"common_mistakes", "faqs", "further_reading"),
		newDoc: func() Document { return &BeginnersGuideDocument{} },
	},
	KindInDepthReview: {
		body:   sections("features", "benefits", "drawbacks"),
		newDoc: func() Document { return &InDepthReviewDocument{} },
	},
	KindMythsAndMisconceptions: {
		body:   sections("myths"),
		newDoc: func() Document { return &MythsDocument{} },
	},
	KindBenefitsOverview: {
		body: []field{
			{"benefits", fieldSections},
			{"use_cases", fieldExamples},
			{"statistics", fieldStatistics},
			{"potential_drawbacks", fieldSections},
			{"comparison_with_alternatives", fieldSections},
			{"faqs", fieldFAQs},
			{"tips_for_maximizing_benefits", fieldSections},
		},
		newDoc: func() Document { return &BenefitsOverviewDocument{} },
	},
	KindExpertOpinions: {
		body: []field{
			{"expert_quotes", fieldQuotes},
			{"themes", fieldStrings},
			{"further_reading", fieldStrings},
		},
		newDoc: func() Document { return &ExpertOpinionsDocument{} },
	},
}

// compiled holds one validation schema per kind, built once.
var compiled = func() map[Kind]*openapi3.Schema {
	out := make(map[Kind]*openapi3.Schema, len(shapes))
	for k := range shapes {
		out[k] = buildSchema(k)
	}
	return out
}()

// Fields returns the required field names of a kind: the shared header
// fields followed by the body fields in composition order.
func Fields(kind Kind) []string {
	s, ok := shapes[kind]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(headerFields)+len(s.body))
	for _, f := range headerFields {
		out = append(out, f.name)
	}
	for _, f := range s.body {
		out = append(out, f.name)
	}
	return out
}

// JSONSchema returns a fresh copy of the kind's document schema, suitable for
// sending to a structured-output model or publishing over HTTP.
func JSONSchema(kind Kind) *openapi3.Schema {
	if _, ok := shapes[kind]; !ok {
		return nil
	}
	return buildSchema(kind)
}

// MarshalSchema renders the kind's schema as a plain JSON object.
func MarshalSchema(kind Kind) (map[string]any, error) {
	s := JSONSchema(kind)
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func buildSchema(kind Kind) *openapi3.Schema {
	fields := append(append([]field{}, headerFields...), shapes[kind].body...)
	return objectSchema(fields)
}

func objectSchema(fields []field) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, f := range fields {
		s.WithProperty(f.name, fieldSchema(f.typ))
		s.Required = append(s.Required, f.name)
	}
	return s
}

func stringObject(names ...string) *openapi3.Schema {
	fields := make([]field, len(names))
	for i, n := range names {
		fields[i] = field{n, fieldString}
	}
	return objectSchema(fields)
}

func fieldSchema(t fieldType) *openapi3.Schema {
	switch t {
	case fieldSections:
		return openapi3.NewArraySchema().WithItems(stringObject("heading", "content"))
	case fieldChecklist:
		item := stringObject("item")
		item.WithProperty("is_completed", openapi3.NewBoolSchema())
		item.Required = append(item.Required, "is_completed")
		return openapi3.NewArraySchema().WithItems(item)
	case fieldStatistics:
		return openapi3.NewArraySchema().WithItems(stringObject("description", "value"))
	case fieldExamples:
		return openapi3.NewArraySchema().WithItems(stringObject("title", "description", "impact"))
	case fieldFAQs:
		return openapi3.NewArraySchema().WithItems(stringObject("question", "answer"))
	case fieldQuotes:
		return openapi3.NewArraySchema().WithItems(
			stringObject("expert_name", "expert_title", "organization", "quote", "context"))
	case fieldStrings:
		return openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	default:
		return openapi3.NewStringSchema()
	}
}
