package domain

import "time"

// WatermarkSettings is a singleton configuration document. Reads merge
// the fixed defaults with whatever has been persisted; writes upsert.
type WatermarkSettings struct {
	Enabled   bool      `json:"enabled"`
	Position  string    `json:"position"`
	Opacity   float64   `json:"opacity"`
	Text      string    `json:"text"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

var WatermarkPositions = map[string]bool{
	"top-left":     true,
	"top-right":    true,
	"bottom-left":  true,
	"bottom-right": true,
	"center":       true,
}

func DefaultWatermarkSettings() WatermarkSettings {
	return WatermarkSettings{
		Enabled:  false,
		Position: "bottom-right",
		Opacity:  0.5,
		Text:     "Griya Properti",
	}
}

type UpdateWatermarkInput struct {
	Enabled  *bool    `json:"enabled,omitempty"`
	Position *string  `json:"position,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
	Text     *string  `json:"text,omitempty"`
}
