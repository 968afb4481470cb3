package domain

const (
	DefaultTechnicalDepth = 0.5
	DefaultUrgency        = 0.3
)

// TovConfig holds the tone-of-voice knobs. All values are in [0,1].
// TechnicalDepth and Urgency are optional; nil means "use the default".
type TovConfig struct {
	Formality      float64  `json:"formality"`
	Warmth         float64  `json:"warmth"`
	Directness     float64  `json:"directness"`
	TechnicalDepth *float64 `json:"technicalDepth,omitempty"`
	Urgency        *float64 `json:"urgency,omitempty"`
}

func (t TovConfig) TechnicalDepthOrDefault() float64 {
	if t.TechnicalDepth == nil {
		return DefaultTechnicalDepth
	}
	return *t.TechnicalDepth
}

func (t TovConfig) UrgencyOrDefault() float64 {
	if t.Urgency == nil {
		return DefaultUrgency
	}
	return *t.Urgency
}

// WithDefaults returns a copy with both optional fields populated.
func (t TovConfig) WithDefaults() TovConfig {
	depth := t.TechnicalDepthOrDefault()
	urgency := t.UrgencyOrDefault()
	t.TechnicalDepth = &depth
	t.Urgency = &urgency
	return t
}
