package snippets

import "time"

type CodeBlock struct {
	Code         string `json:"code"`
	Comment      string `json:"comment"`
	CommentAfter string `json:"commentAfter"`
}

type Snippet struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Language     string      `json:"language,omitempty"`
	CodeSnippets []CodeBlock `json:"codeSnippets"`
	Tags         []string    `json:"tags"`
	UserID       string      `json:"userId"`
	Public       bool        `json:"public"`
	SourceURL    string      `json:"sourceUrl,omitempty"`
	CopiedFromID string      `json:"copiedFromId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateSnippetRequest struct {
	Title        string
	Language     string
	CodeSnippets []CodeBlock
	Tags         []string
	Public       bool
	SourceURL    string
	CopiedFromID string
}
