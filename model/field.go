package model

// Field input types produced by the detection collaborator.
const (
	FieldTypeText      = "text"
	FieldTypeNumber    = "number"
	FieldTypeDate      = "date"
	FieldTypeCheckbox  = "checkbox"
	FieldTypeRadio     = "radio"
	FieldTypeSelect    = "select"
	FieldTypeSignature = "signature"
)

// FieldSegment is a named sub-box of a detected field, such as the year,
// month, and day boxes of a date field.
type FieldSegment struct {
	Name  string   `json:"name"`
	Label string   `json:"label,omitempty"`
	BBox  NormBBox `json:"bbox"`
}

// DetectedField is a form-input region detected by the LLM collaborator.
// The payload arrives as loosely-typed JSON, so the optional members are
// modeled explicitly and the whole record is validated at the boundary
// before it enters the merge pipeline.
type DetectedField struct {
	Name       string         `json:"name"`
	Label      string         `json:"label,omitempty"`
	PageIndex  int            `json:"pageIndex"`
	BBox       NormBBox       `json:"bbox"`
	Type       string         `json:"type"`
	Required   bool           `json:"required"`
	Confidence float64        `json:"confidence"`
	Segments   []FieldSegment `json:"segments,omitempty"`
	Neighbors  []string       `json:"neighbors,omitempty"`
	UIHint     string         `json:"uiHint,omitempty"`
}
