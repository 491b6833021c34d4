package importer

import (
	"net/http"

	"github.com/charmbracelet/log"

	"Ducted/internal/calc/system"
	"Ducted/internal/httpjson"
)

// MaxUploadBytes caps the multipart form held in memory.
const MaxUploadBytes = 10 << 20

type Handler struct {
	Aggregator *system.Aggregator
	Logger     *log.Logger
}

// System reads the workbook posted in the "file" form field and aggregates it.
func (h *Handler) System(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		httpjson.BadRequest(w, err)
		return
	}
	defer file.Close()

	t, err := Read(file)
	if err != nil {
		httpjson.Fail(w, h.Logger, err)
		return
	}
	res, err := h.Aggregator.Aggregate(t)
	if err != nil {
		httpjson.Fail(w, h.Logger, err)
		return
	}
	httpjson.OK(w, res)
}
