package fitting

import (
	"net/http"

	"github.com/charmbracelet/log"

	"Ducted/internal/httpjson"
)

type Handler struct {
	Fittings *Calculator
	Logger   *log.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpjson.Decode(w, r, &input); err != nil {
		httpjson.BadRequest(w, err)
		return
	}
	res, err := h.Fittings.Evaluate(input)
	if err != nil {
		httpjson.Fail(w, h.Logger, err)
		return
	}
	httpjson.OK(w, res)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	httpjson.OK(w, Catalog())
}
