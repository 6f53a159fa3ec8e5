package handlers

import (
	"net/http"

	"storyboard/pkg/zip"
)

const exportFilename = "storyboard_package.zip"

// ExportZip bundles every completed scene's image under its filename. With
// zero completed scenes the export is refused rather than producing an empty
// archive.
func (a *App) ExportZip(w http.ResponseWriter, r *http.Request) {
	completed := a.Studio.CompletedScenes()
	if len(completed) == 0 {
		a.error(w, http.StatusConflict, "no_completed_scenes", "no completed scenes to export")
		return
	}
	archive := zip.ArchiveScenes(completed)
	if len(archive) == 0 {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename=`+exportFilename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
