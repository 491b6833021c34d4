package batch

import (
	"net/http"

	"github.com/charmbracelet/log"

	"Ducted/internal/calc/sizing"
	"Ducted/internal/httpjson"
)

type Handler struct {
	Sizer  *sizing.Calculator
	Logger *log.Logger
}

func (h *Handler) Size(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpjson.Decode(w, r, &input); err != nil {
		httpjson.BadRequest(w, err)
		return
	}
	res, err := Size(h.Sizer, input)
	if err != nil {
		httpjson.Fail(w, h.Logger, err)
		return
	}
	httpjson.OK(w, res)
}
