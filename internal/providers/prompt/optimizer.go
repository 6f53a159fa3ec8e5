// Package prompt turns short scene descriptions into detailed English image
// generation prompts.
package prompt

import (
	"context"
	"strings"

	"storyboard/internal/domain"
)

// Request carries a scene description plus the style and character context the
// optimizer needs. Character reference images are not sent at this stage; only
// the names contribute.
type Request struct {
	SceneText   string
	StylePreset domain.StylePreset
	StyleNotes  string
	Characters  []domain.Character
}

// Optimizer is the contract implemented by all prompt providers. The returned
// prompt is always English regardless of the input language. Transport and
// service errors propagate to the caller; an optimizer must never swallow a
// failure by echoing the input back.
type Optimizer interface {
	Optimize(ctx context.Context, req Request) (string, error)
}

// CharacterNames joins the non-empty roster names for use as prompt context.
func CharacterNames(characters []domain.Character) string {
	var names []string
	for _, c := range characters {
		if name := strings.TrimSpace(c.Name); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
