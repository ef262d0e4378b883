package pitch

import "errors"

// Error kinds surfaced by the lifecycle manager. Handlers translate them to
// HTTP statuses; callers distinguish them with errors.Is.
var (
	// ErrValidation marks bad or missing input, detected before any
	// external call.
	ErrValidation = errors.New("invalid pitch request")
	// ErrGeneration marks a failed or malformed generation call; nothing
	// was persisted and the caller may retry.
	ErrGeneration = errors.New("pitch generation failed")
	// ErrStore marks a persistence failure.
	ErrStore = errors.New("pitch store failure")
	// ErrNotFound covers both "does not exist" and "exists but not owned";
	// the two are deliberately indistinguishable to callers.
	ErrNotFound = errors.New("pitch not found")
)

// SubmitDTO is the JSON body of POST /pitches. PitchID selects regeneration
// of an existing record instead of creation.
type SubmitDTO struct {
	Type           string   `json:"type"`
	BusinessName   string   `json:"businessName"`
	Industry       string   `json:"industry"`
	TargetAudience string   `json:"targetAudience"`
	Tone           string   `json:"tone"`
	KeyPoints      []string `json:"keyPoints"`
	PitchID        string   `json:"pitchId"`
}

// Request carries the validated pitch attributes through the lifecycle.
type Request struct {
	Type           string
	BusinessName   string
	Industry       string
	TargetAudience string
	Tone           string
	KeyPoints      []string
}

// SubmitResult is returned on successful submission.
type SubmitResult struct {
	Pitch string `json:"pitch"`
	ID    string `json:"id"`
}

func (d *SubmitDTO) toRequest() Request {
	return Request{
		Type:           d.Type,
		BusinessName:   d.BusinessName,
		Industry:       d.Industry,
		TargetAudience: d.TargetAudience,
		Tone:           d.Tone,
		KeyPoints:      d.KeyPoints,
	}
}
