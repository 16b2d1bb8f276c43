package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cookingapp/internal/models"
	"cookingapp/internal/providers"
	"cookingapp/internal/services"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

const maxRequestBodySize = 4 << 10

const notImplementedMessage = "Not implemented"

// Intents the screen exposes but does not act on.
var unimplementedIntents = map[string]struct{}{
	"cook-now":      {},
	"delete":        {},
	"explore":       {},
	"favorites":     {},
	"notifications": {},
	"power":         {},
	"view-all":      {},
}

type rescheduleRequest struct {
	Time string `json:"time" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type StateController struct {
	logger providers.Logger
	state  services.CatalogViewStateInterface
	cache  providers.CacheProviderInterface
}

func NewStateController(logger providers.Logger, state services.CatalogViewStateInterface, cache providers.CacheProviderInterface) *StateController {
	return &StateController{
		logger: logger,
		state:  state,
		cache:  cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// GetState serves the snapshot, cached per state version.
func (sc *StateController) GetState(w http.ResponseWriter, r *http.Request) {
	cacheKey := "state:" + strconv.FormatUint(sc.state.Version(), 10)
	if data, ok := sc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	snap := sc.state.Snapshot()
	gson, err := json.Marshal(snap)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	sc.cache.Set("state:"+strconv.FormatUint(snap.Version, 10), gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// Fetch starts a catalog fetch. With ?wait=1 it blocks until the result is
// applied and answers with the new snapshot.
func (sc *StateController) Fetch(w http.ResponseWriter, r *http.Request) {
	done := sc.state.BeginFetch()

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if !wait {
		writeJSON(w, http.StatusAccepted, map[string]models.FetchStatus{"status": models.StatusLoading})
		return
	}

	select {
	case <-done:
		writeJSON(w, http.StatusOK, sc.state.Snapshot())
	case <-r.Context().Done():
		sc.logger.Debugf(providers.TypeGet, "Client went away while waiting for catalog")
	}
}

func (sc *StateController) Select(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.URL.Query().Get("i"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "query parameter i must be an integer")
		return
	}

	if err = sc.state.SelectDish(index); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sc.state.Snapshot())
}

func (sc *StateController) Reschedule(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}
	v := validate.Struct(&payload)
	if !v.Validate() {
		writeMessage(w, http.StatusBadRequest, v.Errors.One())
		return
	}

	err := sc.state.ConfirmReschedule(payload.Time)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, sc.state.Snapshot())
	case errors.Is(err, services.ErrInvalidSelection):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidScheduleTime):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		sc.logger.Errorf(providers.TypePost, "Reschedule failed: %s", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (sc *StateController) Dismiss(w http.ResponseWriter, r *http.Request) {
	sc.state.DismissSelection()
	writeJSON(w, http.StatusOK, sc.state.Snapshot())
}

func (sc *StateController) ClearSchedule(w http.ResponseWriter, r *http.Request) {
	if err := sc.state.ClearSchedule(); err != nil {
		sc.logger.Errorf(providers.TypePost, "Clearing schedule failed: %s", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Intent answers the screen actions that have no behavior behind them.
func (sc *StateController) Intent(w http.ResponseWriter, r *http.Request) {
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/intent/"), "/")
	if _, ok := unimplementedIntents[name]; !ok {
		writeMessage(w, http.StatusNotFound, "unknown intent")
		return
	}
	writeMessage(w, http.StatusNotImplemented, notImplementedMessage)
}
