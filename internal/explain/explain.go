package explain

// Source records where a tag inference result came from.
type Source string

const (
	SourceOpenAI   Source = "openai"
	SourceFallback Source = "fallback"
	SourceDisabled Source = "disabled"
	SourceError    Source = "error"
)

// AgeRange is the inclusive traveler age interval of the group.
type AgeRange struct {
	Min int `json:"min" validate:"min=0,max=120"`
	Max int `json:"max" validate:"min=0,max=120"`
}

// DateRange carries RFC3339 trip dates.
type DateRange struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// Constraints bound the inference result.
type Constraints struct {
	MaxTags       int    `json:"maxTags" validate:"min=1,max=400"`
	PromptVersion string `json:"promptVersion" validate:"required"`
}

// Request is the trip summary submitted to POST /explain.
type Request struct {
	DestinationCountry string      `json:"destinationCountry" validate:"required,len=2,uppercase,alpha"`
	MarketplaceCountry string      `json:"marketplaceCountry,omitempty" validate:"omitempty,len=2,uppercase,alpha"`
	GroupAge           AgeRange    `json:"groupAge"`
	Dates              *DateRange  `json:"dates,omitempty"`
	Season             string      `json:"season,omitempty"`
	TripType           string      `json:"tripType,omitempty"`
	Constraints        Constraints `json:"constraints"`
}

// ScoredTag is one proposed tag with its relevance in [0,1].
type ScoredTag struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// ExcludedTag is a tag the model recommends filtering out.
type ExcludedTag struct {
	ID    string   `json:"id"`
	Score *float64 `json:"score,omitempty"`
}

// Meta records provenance of a response.
type Meta struct {
	PromptVersion string `json:"promptVersion"`
	Source        Source `json:"source,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// Response is the tag inference result returned by POST /explain.
type Response struct {
	Tags    []ScoredTag   `json:"tags"`
	Exclude []ExcludedTag `json:"exclude,omitempty"`
	Meta    Meta          `json:"meta"`
}
