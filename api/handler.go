package api

import (
	"errors"
	"net/http"

	"dlist/server"
	"dlist/types"

	"github.com/emicklei/go-restful/v3"
	"github.com/inconshreveable/log15"
)

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type NamesResponse struct {
	Lists []string `json:"lists"`
}

type Handler struct {
	store  *server.Store
	logger log15.Logger
}

func NewHandler(store *server.Store, logger log15.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{Status: "ok"})
}

// GET /api/v1/lists
func (h *Handler) Names(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, NamesResponse{Lists: h.store.Names()})
}

// GET /api/v1/lists/{name}
func (h *Handler) View(req *restful.Request, resp *restful.Response) {
	view, err := h.store.View(req.PathParameter("name"))
	if err != nil {
		h.writeError(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, view)
}

// POST /api/v1/lists/{name}/commands
// Body: types.Command, the path name wins over the body's list field.
func (h *Handler) Apply(req *restful.Request, resp *restful.Response) {
	var cmd types.Command
	if err := req.ReadEntity(&cmd); err != nil {
		h.logger.Error("Failed to parse request body", "error", err)
		resp.WriteHeaderAndEntity(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	cmd.List = req.PathParameter("name")

	result, err := h.store.Apply(&cmd)
	if err != nil {
		h.writeError(resp, err)
		return
	}

	h.logger.Info("Command applied", "action", result.Action, "list", result.List)
	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

func (h *Handler) writeError(resp *restful.Response, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Command failed", "error", err)
	} else {
		h.logger.Debug("Command rejected", "error", err, "status", status)
	}

	resp.WriteHeaderAndEntity(status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, server.ErrUnknownList):
		return http.StatusNotFound
	case errors.Is(err, server.ErrListExists):
		return http.StatusConflict
	case errors.Is(err, types.ErrIndexOutOfRange),
		errors.Is(err, types.ErrInvalidArgument),
		errors.Is(err, types.ErrUnknownAction),
		errors.Is(err, types.ErrMissingList),
		errors.Is(err, types.ErrMissingOther):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
