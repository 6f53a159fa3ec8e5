// Package script converts raw numbered free text into ordered scene records.
package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"storyboard/internal/domain"
)

// Frame delimiters are one-or-more digits followed by a period, e.g. "1.".
var delimiterRe = regexp.MustCompile(`\d+\.`)

// Characters allowed in filenames: word characters, whitespace and Hangul
// syllables. Everything else is stripped.
var filenameStripRe = regexp.MustCompile(`[^\w\s가-힣]`)

const filenameSliceLen = 15

// Parse scans text for numbered frame delimiters and returns one scene per
// delimiter with non-empty content, in encounter order. Text preceding the
// first delimiter is discarded. Duplicate numbers produce independent scenes.
// Input without any delimiter yields an empty result.
func Parse(text string) []domain.Scene {
	matches := delimiterRe.FindAllStringIndex(text, -1)
	var scenes []domain.Scene
	for i, match := range matches {
		number := strings.TrimSuffix(text[match[0]:match[1]], ".")
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(text[match[1]:end])
		if content == "" {
			continue
		}
		scenes = append(scenes, domain.Scene{
			ID:          uuid.NewString(),
			Number:      number,
			Description: content,
			Filename:    buildFilename(number, content),
			Status:      domain.SceneStatusIdle,
		})
	}
	return scenes
}

// buildFilename derives a deterministic filename from the scene number and a
// sanitized slice of the content's first line. An empty sanitized segment is
// acceptable.
func buildFilename(number, content string) string {
	firstLine := content
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		firstLine = content[:idx]
	}
	firstLine = filenameStripRe.ReplaceAllString(firstLine, "")
	runes := []rune(firstLine)
	if len(runes) > filenameSliceLen {
		firstLine = string(runes[:filenameSliceLen])
	}
	return fmt.Sprintf("%s_%s.png", number, firstLine)
}
