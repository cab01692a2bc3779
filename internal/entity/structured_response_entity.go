package entity

// Source is a single citation attached to an answer.
type Source struct {
	Id        int    `json:"id"`
	Document  string `json:"document"`
	Snippet   string `json:"snippet"`
	Page      int    `json:"page"`
	Relevance string `json:"relevance,omitempty"`
	Type      string `json:"type,omitempty"`
}

// StructuredItem is a titled card in the structured answer panels
// (related topics, key insights, action items).
type StructuredItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// StructuredResponse is the second-pass presentation of a raw agent
// answer. Produced once per query and immutable afterward; every array
// field is always non-nil, possibly empty. The JSON tags match the
// schema the structuring model is instructed to emit.
type StructuredResponse struct {
	Answer        string           `json:"answer"`
	Confidence    float64          `json:"confidence"`
	Sources       []Source         `json:"sources"`
	RelatedTopics []StructuredItem `json:"relatedTopics"`
	KeyInsights   []StructuredItem `json:"keyInsights"`
	ActionItems   []StructuredItem `json:"actionItems"`
	Tags          []string         `json:"tags"`
}

// Normalize replaces nil slices so the guarantee "all four arrays present"
// holds regardless of what the model returned.
func (r *StructuredResponse) Normalize() {
	if r.Sources == nil {
		r.Sources = []Source{}
	}
	if r.RelatedTopics == nil {
		r.RelatedTopics = []StructuredItem{}
	}
	if r.KeyInsights == nil {
		r.KeyInsights = []StructuredItem{}
	}
	if r.ActionItems == nil {
		r.ActionItems = []StructuredItem{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
}
