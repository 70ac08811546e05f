package httpapi

import (
	"errors"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/PabloPavan/snipmark_api/internal/snippets"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return strings.TrimSpace(field.String()) != ""
	})
}

var (
	errBadNumber   = errors.New("page and limit must be numbers")
	errInvalidJSON = errors.New("invalid json")
)

// SearchQueryDTO carries the query string of the search endpoints.
type SearchQueryDTO struct {
	Q       string `validate:"max=1000"`
	Include string `validate:"omitempty,oneof=all any"`
	Page    int    `validate:"min=1"`
	Limit   int    `validate:"min=0"`
}

func parseSearchQuery(v url.Values) (SearchQueryDTO, error) {
	page, limit, err := parsePaging(v)
	if err != nil {
		return SearchQueryDTO{}, err
	}
	dto := SearchQueryDTO{
		Q:       v.Get("q"),
		Include: strings.ToLower(strings.TrimSpace(v.Get("include"))),
		Page:    page,
		Limit:   limit,
	}
	return dto, dto.Validate()
}

func (r *SearchQueryDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"Q":       {"max": "query is too long"},
			"Include": {"oneof": "include must be all or any"},
			"Page":    {"min": "page must be at least 1"},
			"Limit":   {"min": "limit must not be negative"},
		}, "invalid request")
	}
	return nil
}

func (r *SearchQueryDTO) Input() snippets.SearchInput {
	return snippets.SearchInput{
		Query:   r.Q,
		Include: r.Include,
		Page:    r.Page,
		Limit:   r.Limit,
	}
}

type PagingDTO struct {
	Page  int `validate:"min=1"`
	Limit int `validate:"min=0"`
}

func parsePagingDTO(v url.Values) (PagingDTO, error) {
	page, limit, err := parsePaging(v)
	if err != nil {
		return PagingDTO{}, err
	}
	dto := PagingDTO{Page: page, Limit: limit}
	if err := validate.Struct(&dto); err != nil {
		return PagingDTO{}, validationMessage(err, map[string]map[string]string{
			"Page":  {"min": "page must be at least 1"},
			"Limit": {"min": "limit must not be negative"},
		}, "invalid request")
	}
	return dto, nil
}

// parsePaging reads page and limit, defaulting to the first page and the
// service's default size.
func parsePaging(v url.Values) (int, int, error) {
	page, limit := 1, 0
	if raw := strings.TrimSpace(v.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errBadNumber
		}
		page = n
	}
	if raw := strings.TrimSpace(v.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errBadNumber
		}
		limit = n
	}
	return page, limit, nil
}

type TagScopeDTO struct {
	Scope string `validate:"omitempty,oneof=public user-public user-private user-all"`
}

func (r *TagScopeDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"Scope": {"oneof": "scope must be public, user-public, user-private or user-all"},
		}, "invalid request")
	}
	return nil
}

type CodeBlockDTO struct {
	Code         string `json:"code" validate:"required,notblank,max=250000"`
	Comment      string `json:"comment" validate:"max=5000"`
	CommentAfter string `json:"commentAfter" validate:"max=5000"`
}

type SnippetCreateDTO struct {
	Title        string         `json:"title" validate:"required,notblank,max=200"`
	Language     string         `json:"language" validate:"omitempty,notblank,max=32"`
	CodeSnippets []CodeBlockDTO `json:"codeSnippets" validate:"required,min=1,max=50,dive"`
	Tags         []string       `json:"tags" validate:"max=20,dive,notblank,max=32"`
	Public       bool           `json:"public"`
	SourceURL    string         `json:"sourceUrl" validate:"omitempty,url,max=2048"`
	CopiedFromID string         `json:"copiedFromId" validate:"omitempty,uuid"`
}

func (r *SnippetCreateDTO) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err, map[string]map[string]string{
			"Title": {
				"required": "title and code snippets are required",
				"notblank": "title and code snippets are required",
				"max":      "title is too long",
			},
			"CodeSnippets": {
				"required": "title and code snippets are required",
				"min":      "title and code snippets are required",
				"max":      "too many code snippets",
			},
			"Code": {
				"required": "code must not be empty",
				"notblank": "code must not be empty",
				"max":      "code is too long",
			},
			"Language":     {"*": "invalid language"},
			"Tags":         {"max": "too many tags", "*": "invalid tag"},
			"SourceURL":    {"*": "invalid source url"},
			"CopiedFromID": {"*": "invalid copied from id"},
		}, "invalid request")
	}
	return nil
}

func (r *SnippetCreateDTO) Request() snippets.CreateSnippetRequest {
	blocks := make([]snippets.CodeBlock, 0, len(r.CodeSnippets))
	for _, b := range r.CodeSnippets {
		blocks = append(blocks, snippets.CodeBlock{
			Code:         b.Code,
			Comment:      b.Comment,
			CommentAfter: b.CommentAfter,
		})
	}
	return snippets.CreateSnippetRequest{
		Title:        r.Title,
		Language:     r.Language,
		CodeSnippets: blocks,
		Tags:         r.Tags,
		Public:       r.Public,
		SourceURL:    r.SourceURL,
		CopiedFromID: r.CopiedFromID,
	}
}

func validationMessage(err error, messages map[string]map[string]string, fallback string) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return errors.New(fallback)
	}
	for _, valErr := range valErrs {
		if fieldMessages, ok := messages[valErr.Field()]; ok {
			if msg, ok := fieldMessages[valErr.Tag()]; ok {
				return errors.New(msg)
			}
			if msg, ok := fieldMessages["*"]; ok {
				return errors.New(msg)
			}
		}
	}
	return errors.New(fallback)
}
