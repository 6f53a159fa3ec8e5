// Package image renders storyboard frames through an external image model.
package image

import (
	"context"
	"errors"
	"strings"

	"storyboard/internal/domain"
)

// ErrNoImage signals that the service responded successfully but returned no
// image payload. It is distinct from a transport error; callers treat both as
// a scene failure.
var ErrNoImage = errors.New("image: no image produced")

// Reference is one visual-context input: base64 data plus its media type.
type Reference struct {
	Data     string
	MIMEType string
}

// Request describes a normalized render request passed to any image provider.
// References are ordered: character images in roster order, then the optional
// style reference.
type Request struct {
	Prompt      string
	References  []Reference
	AspectRatio domain.AspectRatio
}

// Generator is the contract implemented by all image providers. On success it
// returns an embeddable data URI.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// BuildReferences assembles the ordered reference list from the character
// roster and the optional style reference. Characters without an image
// contribute nothing; the style reference, when present, is ordered last.
func BuildReferences(characters []domain.Character, styleRef *domain.StyleReference) []Reference {
	var refs []Reference
	for _, c := range characters {
		if !c.HasImage() {
			continue
		}
		refs = append(refs, Reference{Data: StripDataURI(c.ImageData), MIMEType: c.MIMEType})
	}
	if styleRef != nil && strings.TrimSpace(styleRef.Data) != "" {
		refs = append(refs, Reference{Data: StripDataURI(styleRef.Data), MIMEType: styleRef.MIMEType})
	}
	return refs
}

// StripDataURI drops a leading "data:...;base64," prefix, leaving raw base64.
// Input without a prefix passes through unchanged.
func StripDataURI(data string) string {
	if idx := strings.IndexByte(data, ','); idx >= 0 && strings.HasPrefix(data, "data:") {
		return data[idx+1:]
	}
	return data
}
