package zip

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"io"
	"testing"

	"storyboard/internal/domain"
)

func uri(data string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(data))
}

func readEntries(t *testing.T, archive []byte) map[string]string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	entries := map[string]string{}
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", file.Name, err)
		}
		entries[file.Name] = string(data)
	}
	return entries
}

func TestArchiveScenesCompletedOnly(t *testing.T) {
	scenes := []domain.Scene{
		{Filename: "1_alpha.png", Status: domain.SceneStatusCompleted, ImageURL: uri("frame-a")},
		{Filename: "2_beta.png", Status: domain.SceneStatusError},
		{Filename: "3_gamma.png", Status: domain.SceneStatusCompleted, ImageURL: uri("frame-c")},
		{Filename: "4_delta.png", Status: domain.SceneStatusIdle},
	}

	entries := readEntries(t, ArchiveScenes(scenes))
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries["storyboard_images/1_alpha.png"] != "frame-a" {
		t.Errorf("entry 1 = %q", entries["storyboard_images/1_alpha.png"])
	}
	if entries["storyboard_images/3_gamma.png"] != "frame-c" {
		t.Errorf("entry 3 = %q", entries["storyboard_images/3_gamma.png"])
	}
}

func TestArchiveScenesSkipsUndecodableImage(t *testing.T) {
	scenes := []domain.Scene{
		{Filename: "1_ok.png", Status: domain.SceneStatusCompleted, ImageURL: uri("good")},
		{Filename: "2_bad.png", Status: domain.SceneStatusCompleted, ImageURL: "data:image/png;base64,!!!not-base64!!!"},
	}
	entries := readEntries(t, ArchiveScenes(scenes))
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if _, ok := entries["storyboard_images/1_ok.png"]; !ok {
		t.Errorf("valid entry missing: %v", entries)
	}
}

func TestArchiveScenesBareBase64(t *testing.T) {
	scenes := []domain.Scene{{
		Filename: "1_raw.png",
		Status:   domain.SceneStatusCompleted,
		ImageURL: base64.StdEncoding.EncodeToString([]byte("raw-bytes")),
	}}
	entries := readEntries(t, ArchiveScenes(scenes))
	if entries["storyboard_images/1_raw.png"] != "raw-bytes" {
		t.Errorf("entries = %v", entries)
	}
}
