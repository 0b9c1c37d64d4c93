package author

import (
	"log"
	"net/http"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Get handles GET /author/{name}.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		http.NotFound(w, r)
		return
	}

	summary, err := h.service.Summary(r.Context(), name)
	if err != nil {
		log.Printf("author lookup: name=%q error=%v", name, err)
		httpx.JSONError(w, http.StatusInternalServerError, "author lookup failed")
		return
	}

	httpx.JSON(w, http.StatusOK, summary)
}
