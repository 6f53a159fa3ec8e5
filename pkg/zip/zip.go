// Package zip bundles completed storyboard frames into one downloadable
// archive.
package zip

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"strings"

	"storyboard/internal/domain"
)

// Folder is the directory entry all frames are stored under.
const Folder = "storyboard_images"

// ArchiveScenes packs the image of every completed scene under its filename.
// Scenes in any other state, and completed scenes whose data URI cannot be
// decoded, are silently excluded. Callers gate the zero-completed case.
func ArchiveScenes(scenes []domain.Scene) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, scene := range scenes {
		if scene.Status != domain.SceneStatusCompleted || scene.ImageURL == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(stripDataURI(scene.ImageURL))
		if err != nil {
			continue
		}
		w, err := zw.Create(Folder + "/" + scene.Filename)
		if err != nil {
			continue
		}
		if _, err := w.Write(data); err != nil {
			return nil
		}
	}
	_ = zw.Close()
	return buf.Bytes()
}

func stripDataURI(data string) string {
	if idx := strings.IndexByte(data, ','); idx >= 0 && strings.HasPrefix(data, "data:") {
		return data[idx+1:]
	}
	return data
}
