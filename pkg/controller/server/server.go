package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/docmirror/pkg/domain/interfaces"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/utils/errutil"
	"github.com/m-mizutani/docmirror/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultHistoryLimit is the number of records returned by the history endpoint
	DefaultHistoryLimit = 20

	msgSynced     = "Documentation synced successfully!"
	msgNoResource = "No resource provided"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response is JSON encoded
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		code = http.StatusInternalServerError
		body = []byte(`{"status":"error","message":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

type syncResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Result  *model.SyncResult `json:"result,omitempty"`
}

type resourceResponse struct {
	Name       types.ResourceName   `json:"name"`
	Repository types.RepositoryName `json:"repository"`
	Branch     types.BranchName     `json:"branch"`
	Content    []string             `json:"content,omitempty"`
}

type config struct {
	historyLimit int
}

type Option func(*config)

// WithHistoryLimit sets the default number of history records returned
func WithHistoryLimit(limit int) Option {
	return func(cfg *config) {
		cfg.historyLimit = limit
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/sync", func(w http.ResponseWriter, r *http.Request) {
			resource, err := resourceFromBody(r)
			if err != nil {
				logging.From(r.Context()).Warn("fail to parse sync request", "error", err)
				writeJSON(w, http.StatusBadRequest, syncResponse{Status: "error", Message: msgNoResource})
				return
			}
			handleSync(w, r, uc, resource)
		})
		r.Post("/sync/{resource}", func(w http.ResponseWriter, r *http.Request) {
			handleSync(w, r, uc, types.ResourceName(chi.URLParam(r, "resource")))
		})

		r.Get("/resources", func(w http.ResponseWriter, r *http.Request) {
			resources := uc.ListResources(r.Context())
			resp := make([]resourceResponse, 0, len(resources))
			for _, res := range resources {
				resp = append(resp, resourceResponse{
					Name:       res.Name,
					Repository: res.Repository,
					Branch:     res.Branch,
					Content:    res.Content,
				})
			}
			writeJSON(w, http.StatusOK, resp)
		})
		r.Get("/resources/{resource}/history", func(w http.ResponseWriter, r *http.Request) {
			limit := cfg.historyLimit
			if v := r.URL.Query().Get("limit"); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil || n < 1 {
					writeJSON(w, http.StatusBadRequest, syncResponse{Status: "error", Message: "invalid limit"})
					return
				}
				limit = n
			}

			resource := types.ResourceName(chi.URLParam(r, "resource"))
			records, err := uc.ListSyncHistory(r.Context(), resource, limit)
			if err != nil {
				code := errorStatus(err)
				if code >= http.StatusInternalServerError {
					errutil.HandleError(r.Context(), "fail to list sync history", err)
				}
				writeJSON(w, code, syncResponse{Status: "error", Message: err.Error()})
				return
			}
			if records == nil {
				records = []*model.SyncRecord{}
			}
			writeJSON(w, http.StatusOK, records)
		})
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

// resourceFromBody reads the resource field from a JSON or form encoded body
func resourceFromBody(r *http.Request) (types.ResourceName, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var resource string
	if mediaType == "application/json" {
		var req struct {
			Resource string `json:"resource"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", goerr.Wrap(types.ErrValidationFailed, "invalid JSON body", goerr.V("error", err))
		}
		resource = req.Resource
	} else {
		resource = r.FormValue("resource")
	}

	if resource == "" {
		return "", goerr.Wrap(types.ErrValidationFailed, "resource is empty")
	}
	return types.ResourceName(resource), nil
}

func handleSync(w http.ResponseWriter, r *http.Request, uc interfaces.UseCase, resource types.ResourceName) {
	ctx := r.Context()
	if resource == "" {
		writeJSON(w, http.StatusBadRequest, syncResponse{Status: "error", Message: msgNoResource})
		return
	}

	result, err := uc.SyncResource(ctx, &model.SyncInput{Resource: resource})
	if err != nil {
		code := errorStatus(err)
		if code >= http.StatusInternalServerError {
			errutil.HandleError(ctx, "fail to sync resource", err)
		} else {
			logging.From(ctx).Warn("sync request rejected", "error", err, "resource", resource)
		}
		writeJSON(w, code, syncResponse{Status: "error", Message: err.Error(), Result: result})
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{Status: "success", Message: msgSynced, Result: result})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnknownResource):
		return http.StatusNotFound
	case errors.Is(err, types.ErrRemoteUnavailable), errors.Is(err, types.ErrBlobDownloadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
