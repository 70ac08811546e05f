package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/PabloPavan/snipmark_api/internal/snippets"
	"github.com/PabloPavan/snipmark_api/internal/tags"
)

type PersonalService interface {
	SearchUser(ctx context.Context, userID string, in snippets.SearchInput) ([]*snippets.Snippet, error)
	GetUser(ctx context.Context, userID, id string, in snippets.SearchInput) (*snippets.Snippet, error)
	Create(ctx context.Context, req snippets.CreateSnippetRequest) (*snippets.Snippet, error)
	Export(ctx context.Context, userID string) ([]*snippets.Snippet, error)
	Tags(ctx context.Context, scope, userID string) ([]tags.Frequency, error)
	UsedTags(ctx context.Context, userID string) (*snippets.UsedTags, error)
	Feed(ctx context.Context, userID string, page, limit int) ([]*snippets.Snippet, error)
	Pinned(ctx context.Context, userID string, page, limit int) ([]*snippets.Snippet, error)
}

// PersonalHandler serves routes under /personal/users/{userID}. The
// RequireOwner middleware has already matched the caller to userID.
type PersonalHandler struct {
	Service PersonalService
}

// Search own snippets
// @Summary Search the user's snippets, public and private
// @Tags personal
// @Produce json
// @Security GatewayUser
// @Param userID path string true "user id"
// @Param q query string false "search query; private:only limits to private snippets"
// @Param include query string false "all (default) or any"
// @Param page query int false "page, starting at 1"
// @Param limit query int false "page size, at most 20"
// @Success 200 {array} snippets.Snippet
// @Failure 400 {object} errorBody
// @Failure 401 {object} errorBody
// @Failure 403 {object} errorBody
// @Failure 500 {object} errorBody
// @Router /personal/users/{userID}/snippets [get]
func (h *PersonalHandler) Search(w http.ResponseWriter, r *http.Request) {
	dto, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	list, err := h.Service.SearchUser(r.Context(), userIDParam(r), dto.Input())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get own snippet
// @Summary Get one of the user's snippets
// @Tags personal
// @Produce json
// @Security GatewayUser
// @Param userID path string true "user id"
// @Param id path string true "snippet id"
// @Success 200 {object} snippets.Snippet
// @Failure 401 {object} errorBody
// @Failure 403 {object} errorBody
// @Failure 404 {object} errorBody
// @Router /personal/users/{userID}/snippets/{id} [get]
func (h *PersonalHandler) Get(w http.ResponseWriter, r *http.Request) {
	dto, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	snippet, err := h.Service.GetUser(r.Context(), userIDParam(r), chi.URLParam(r, "id"), dto.Input())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

// Create snippet
// @Summary Create a snippet owned by the user
// @Tags personal
// @Accept json
// @Produce json
// @Security GatewayUser
// @Param userID path string true "user id"
// @Param body body SnippetCreateDTO true "snippet"
// @Success 201 {object} snippets.Snippet
// @Failure 400 {object} errorBody
// @Failure 401 {object} errorBody
// @Failure 403 {object} errorBody
// @Failure 409 {object} errorBody
// @Router /personal/users/{userID}/snippets [post]
func (h *PersonalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SnippetCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, errInvalidJSON)
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(w, err)
		return
	}

	snippet, err := h.Service.Create(r.Context(), req.Request())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snippet)
}

// Export snippets
// @Summary Export every snippet of the user
// @Tags personal
// @Produce json
// @Security GatewayUser
// @Param userID path string true "user id"
// @Success 200 {array} snippets.Snippet
// @Failure 401 {object} errorBody
// @Failure 403 {object} errorBody
// @Router /personal/users/{userID}/snippets/export [get]
func (h *PersonalHandler) Export(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Export(r.Context(), userIDParam(r))
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="snippets.json"`)
	writeJSON(w, http.StatusOK, list)
}

// Tags by scope
// @Summary Tag frequencies for one scope
// @Tags personal
// @Produce json
// @Security GatewayUser
// @Param userID path string true "user id"
// @Param scope query string false "public, user-public, user-private or user-all (default)"
// @Success 200 {array} tags.Frequency
// @Failure 400 {object} errorBody
// @Failure 401 {object} errorBody
// @Failure 403 {object} errorBody
// @Router /personal/users/{userID}/snippets/tags [get]
func (h *PersonalHandler) Tags(w http.ResponseWriter, r *http.Request) {
	dto := TagScopeDTO{Scope: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("scope")))}
	if err := dto.Validate(); err != nil {
		writeBadRequest(w, err)
		return
	}
	if dto.Scope == "" {
		dto.Scope = tags.ScopeUserAll
	}

	freq, err := h.Service.Tags(r.Context(), dto.Scope, userIDParam(r))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, freq)
}

// Used tags
// @Summary Tag frequencies of the user's public and private snippets
// @Tags personal
// @Produce json
// @Security GatewayUser
// @Param userID path string true "user id"
// @Success 200 {object} snippets.UsedTags
// @Failure 401 {object} errorBody
// @Failure 403 {object} errorBody
// @Router /personal/users/{userID}/used-tags [get]
func (h *PersonalHandler) UsedTags(w http.ResponseWriter, r *http.Request) {
	used, err := h.Service.UsedTags(r.Context(), userIDParam(r))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, used)
}

// Feed
// @Summary Public snippets with the user's watched tags
// @Tags personal
// @Produce json
// @Security GatewayUser
// @Param userID path string true "user id"
// @Param page query int false "page, starting at 1"
// @Param limit query int false "page size, at most 20"
// @Success 200 {array} snippets.Snippet
// @Failure 400 {object} errorBody
// @Failure 401 {object} errorBody
// @Failure 403 {object} errorBody
// @Router /personal/users/{userID}/feed [get]
func (h *PersonalHandler) Feed(w http.ResponseWriter, r *http.Request) {
	h.paged(w, r, h.Service.Feed)
}

// Pinned
// @Summary The user's pinned snippets
// @Tags personal
// @Produce json
// @Security GatewayUser
// @Param userID path string true "user id"
// @Param page query int false "page, starting at 1"
// @Param limit query int false "page size, at most 20"
// @Success 200 {array} snippets.Snippet
// @Failure 400 {object} errorBody
// @Failure 401 {object} errorBody
// @Failure 403 {object} errorBody
// @Router /personal/users/{userID}/pinned [get]
func (h *PersonalHandler) Pinned(w http.ResponseWriter, r *http.Request) {
	h.paged(w, r, h.Service.Pinned)
}

type pagedLookup func(ctx context.Context, userID string, page, limit int) ([]*snippets.Snippet, error)

func (h *PersonalHandler) paged(w http.ResponseWriter, r *http.Request, fn pagedLookup) {
	paging, err := parsePagingDTO(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	list, err := fn(r.Context(), userIDParam(r), paging.Page, paging.Limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
