package domain

import "strings"

// SceneStatus enumerates the lifecycle states of a storyboard scene.
type SceneStatus string

const (
	SceneStatusIdle       SceneStatus = "idle"
	SceneStatusGenerating SceneStatus = "generating"
	SceneStatusCompleted  SceneStatus = "completed"
	SceneStatusError      SceneStatus = "error"
)

// Scene is one numbered unit of the script, corresponding to exactly one
// generated image. The ID is assigned at parse time and stays stable across
// regeneration; the filename never changes after parsing.
type Scene struct {
	ID          string      `json:"id"`
	Number      string      `json:"number"`
	Description string      `json:"description"`
	Filename    string      `json:"filename"`
	Status      SceneStatus `json:"status"`
	ImageURL    string      `json:"image_url,omitempty"`
	Prompt      string      `json:"prompt,omitempty"`
}

// Character is one roster entry. The name may be empty; the reference image,
// when present, is carried as base64 data plus its media type.
type Character struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageData string `json:"image_data,omitempty"`
	MIMEType  string `json:"mime_type,omitempty"`
}

// HasImage reports whether the character carries a usable reference image.
func (c Character) HasImage() bool {
	return strings.TrimSpace(c.ImageData) != "" && strings.TrimSpace(c.MIMEType) != ""
}

// MaxCharacters bounds the roster size.
const MaxCharacters = 8

// StylePreset enumerates the fixed artistic style choices.
type StylePreset string

const (
	StylePhotorealistic StylePreset = "Photorealistic"
	StyleAnime          StylePreset = "Anime Style"
	Style3DRender       StylePreset = "3D Render"
	StyleDigitalArt     StylePreset = "Digital Art"
)

// StylePresets lists every supported preset.
var StylePresets = []StylePreset{StylePhotorealistic, StyleAnime, Style3DRender, StyleDigitalArt}

// ValidStylePreset reports whether the preset is one of the fixed choices.
func ValidStylePreset(p StylePreset) bool {
	for _, preset := range StylePresets {
		if p == preset {
			return true
		}
	}
	return false
}

// AspectRatio enumerates the fixed output aspect ratios.
type AspectRatio string

const (
	AspectWide     AspectRatio = "16:9"
	AspectClassic  AspectRatio = "4:3"
	AspectSquare   AspectRatio = "1:1"
	AspectVertical AspectRatio = "9:16"
)

// AspectRatios lists every supported ratio.
var AspectRatios = []AspectRatio{AspectWide, AspectClassic, AspectSquare, AspectVertical}

// ValidAspectRatio reports whether the ratio is one of the fixed choices.
func ValidAspectRatio(a AspectRatio) bool {
	for _, ratio := range AspectRatios {
		if a == ratio {
			return true
		}
	}
	return false
}

// StyleReference is an optional image biasing lighting and mood of the output.
type StyleReference struct {
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
}

// StyleConfig is the transient visual-direction selection for one run.
type StyleConfig struct {
	Preset      StylePreset     `json:"preset"`
	AspectRatio AspectRatio     `json:"aspect_ratio"`
	Notes       string          `json:"notes"`
	StyleRef    *StyleReference `json:"style_ref,omitempty"`
}

// User is the session-scoped stub identity. No server-side credential
// validation exists; presence of the record means authenticated.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
