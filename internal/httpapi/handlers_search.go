package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/PabloPavan/snipmark_api/internal/snippets"
	"github.com/PabloPavan/snipmark_api/internal/tags"
)

type SearchService interface {
	Search(ctx context.Context, in snippets.SearchInput) ([]*snippets.Snippet, error)
	Get(ctx context.Context, id string, in snippets.SearchInput) (*snippets.Snippet, error)
	Tagged(ctx context.Context, tag string, page, limit int) ([]*snippets.Snippet, error)
	Tags(ctx context.Context, scope, userID string) ([]tags.Frequency, error)
}

type PublicHandler struct {
	Service SearchService
}

// Search public snippets
// @Summary Search public snippets
// @Description Free-text search with [tag] groups and lang:, site:, user:<uuid> directives.
// @Tags public
// @Produce json
// @Param q query string false "search query"
// @Param include query string false "all (default) or any"
// @Param page query int false "page, starting at 1"
// @Param limit query int false "page size, at most 20"
// @Success 200 {array} snippets.Snippet
// @Failure 400 {object} errorBody
// @Failure 429 {object} errorBody
// @Failure 500 {object} errorBody
// @Router /public/snippets [get]
func (h *PublicHandler) Search(w http.ResponseWriter, r *http.Request) {
	dto, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	list, err := h.Service.Search(r.Context(), dto.Input())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get public snippet
// @Summary Get a public snippet
// @Tags public
// @Produce json
// @Param id path string true "snippet id"
// @Param q query string false "search query the snippet must also match"
// @Param include query string false "all (default) or any"
// @Success 200 {object} snippets.Snippet
// @Failure 400 {object} errorBody
// @Failure 404 {object} errorBody
// @Failure 500 {object} errorBody
// @Router /public/snippets/{id} [get]
func (h *PublicHandler) Get(w http.ResponseWriter, r *http.Request) {
	dto, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	snippet, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"), dto.Input())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

// Tagged public snippets
// @Summary List public snippets with a tag
// @Tags public
// @Produce json
// @Param tag path string true "tag"
// @Param page query int false "page, starting at 1"
// @Param limit query int false "page size, at most 20"
// @Success 200 {array} snippets.Snippet
// @Failure 400 {object} errorBody
// @Failure 500 {object} errorBody
// @Router /public/snippets/tagged/{tag} [get]
func (h *PublicHandler) Tagged(w http.ResponseWriter, r *http.Request) {
	paging, err := parsePagingDTO(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	list, err := h.Service.Tagged(r.Context(), chi.URLParam(r, "tag"), paging.Page, paging.Limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Public tags
// @Summary Tag frequencies over public snippets
// @Tags public
// @Produce json
// @Success 200 {array} tags.Frequency
// @Failure 500 {object} errorBody
// @Router /public/tags [get]
func (h *PublicHandler) Tags(w http.ResponseWriter, r *http.Request) {
	freq, err := h.Service.Tags(r.Context(), tags.ScopePublic, "")
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, freq)
}

func userIDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "userID"))
}
