package system

import (
	"net/http"

	"github.com/charmbracelet/log"

	"Ducted/internal/httpjson"
)

type Handler struct {
	Aggregator *Aggregator
	Logger     *log.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var t Topology
	if err := httpjson.Decode(w, r, &t); err != nil {
		httpjson.BadRequest(w, err)
		return
	}
	res, err := h.Aggregator.Aggregate(t)
	if err != nil {
		httpjson.Fail(w, h.Logger, err)
		return
	}
	httpjson.OK(w, res)
}
