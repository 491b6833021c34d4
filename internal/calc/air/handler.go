package air

import (
	"net/http"

	"github.com/charmbracelet/log"

	"Ducted/internal/httpjson"
)

type Handler struct {
	Logger *log.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	input := StandardConditions()
	if err := httpjson.Decode(w, r, &input); err != nil {
		httpjson.BadRequest(w, err)
		return
	}
	res, err := Resolve(input)
	if err != nil {
		httpjson.Fail(w, h.Logger, err)
		return
	}
	httpjson.OK(w, res)
}
