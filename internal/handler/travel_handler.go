package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Pranali0315/NomadHelp/internal/config"
	"github.com/Pranali0315/NomadHelp/internal/model"
	"github.com/Pranali0315/NomadHelp/internal/service"
)

type TravelGuideHandler struct {
	Guide service.TravelGuideInterface
}

func NewTravelGuideHandler(svc ...service.TravelGuideInterface) *TravelGuideHandler {
	var guide service.TravelGuideInterface
	if len(svc) > 0 && svc[0] != nil {
		guide = svc[0]
	} else {
		guide = service.NewTravelGuide()
	}
	return &TravelGuideHandler{
		Guide: guide,
	}
}

func (h *TravelGuideHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

// HandleTravelGuide serves GET /travel-guide?location=<q>&detail_level=basic|full.
// Resolution failures come back as 200 with an error-flagged envelope; only
// malformed requests get a non-200 status.
func (h *TravelGuideHandler) HandleTravelGuide(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errMsg := "Method not allowed"
		w.Header().Set("Allow", http.MethodGet)
		h.writeJSONResponse(w, http.StatusMethodNotAllowed, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	location := r.URL.Query().Get("location")
	if location == "" {
		errMsg := "Missing 'location' query parameter"
		h.writeJSONResponse(w, http.StatusBadRequest, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	detailLevel := r.URL.Query().Get("detail_level")
	if detailLevel == "" {
		detailLevel = service.DetailFull
	}
	if detailLevel != service.DetailBasic && detailLevel != service.DetailFull {
		errMsg := "Invalid 'detail_level': must be 'basic' or 'full'"
		h.writeJSONResponse(w, http.StatusBadRequest, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	resp := h.Guide.Guide(r.Context(), location, detailLevel)
	h.writeJSONResponse(w, http.StatusOK, resp)
}

// HandleValidate serves GET /validate, returning the configured identity
// string used by the hosting platform for provisioning checks.
func (h *TravelGuideHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errMsg := "Method not allowed"
		w.Header().Set("Allow", http.MethodGet)
		h.writeJSONResponse(w, http.StatusMethodNotAllowed, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, model.NewTextResponse(config.GetServiceIdentity(), nil))
}
