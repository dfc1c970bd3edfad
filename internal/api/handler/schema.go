package handler

import "github.com/inkwell/blog-platform/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// pageLocals carries the title/description pair every rendered page exposes.
type pageLocals struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// --- Auth requests ---

type registerRequest struct {
	Username  string `json:"username"  form:"username"  validate:"required,min=3,max=30"`
	Password  string `json:"password"  form:"password"  validate:"required,min=6"`
	Email     string `json:"email"     form:"email"     validate:"required,email"`
	FirstName string `json:"firstName" form:"firstName" validate:"required"`
	LastName  string `json:"lastName"  form:"lastName"  validate:"required"`
	Bio       string `json:"bio"       form:"bio"       validate:"omitempty,max=500"`
}

// hasRequiredFields reports whether every mandatory registration field is
// present; absence renders the single generic message rather than per-field
// validator output.
func (r registerRequest) hasRequiredFields() bool {
	return r.Username != "" && r.Password != "" && r.Email != "" &&
		r.FirstName != "" && r.LastName != ""
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// --- Article requests ---

type articleRequest struct {
	Title       string `json:"title"       form:"title"       validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	Body        string `json:"body"        form:"body"        validate:"required"`
	Tags        string `json:"tags"        form:"tags"`
	ReadingTime string `json:"readingTime" form:"readingTime" validate:"required"`
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm" form:"searchTerm"`
}

// --- Responses ---

// articleAuthorResponse is the author view joined onto a single article.
type articleAuthorResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type articleDetailResponse struct {
	Locals  pageLocals            `json:"locals"`
	Article *domain.Article       `json:"article"`
	Author  articleAuthorResponse `json:"author"`
}

// listArticlesResponse is shared by the public listing and the dashboard.
// NextPage/PrevPage are null when the neighbouring page does not exist.
type listArticlesResponse struct {
	Locals      pageLocals        `json:"locals"`
	Articles    []*domain.Article `json:"articles"`
	Total       int64             `json:"total"`
	CurrentPage int               `json:"current_page"`
	NextPage    *int              `json:"next_page"`
	PrevPage    *int              `json:"prev_page"`

	// Dashboard only: the flash recorded by the previous action, if any.
	SuccessMessage *string `json:"success_message,omitempty"`
	ErrorMessage   *string `json:"error_message,omitempty"`
}

type searchResponse struct {
	Locals   pageLocals        `json:"locals"`
	Articles []*domain.Article `json:"articles"`
}
