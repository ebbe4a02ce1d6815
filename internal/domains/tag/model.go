package tag

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"foodgram-backend/internal/shared/utils"
)

// Tag labels recipes (breakfast, lunch, ...)
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

var (
	colorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
	slugPattern  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// CreateTagRequest is the staff-only payload for new tags
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// Normalize trims input, upper-cases the color so uniqueness ignores case
// and derives the slug from the name when it is omitted
func (r *CreateTagRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.TrimSpace(r.Slug)
	r.Color = strings.ToUpper(strings.TrimSpace(r.Color))
	if r.Slug == "" {
		r.Slug = utils.GenerateSlug(r.Name)
	}
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Color,
			validation.Required,
			validation.Match(colorPattern).Error("Enter a valid hex color, e.g. #E26C2D."),
		),
		validation.Field(&r.Slug,
			validation.Required,
			validation.Length(1, 200),
			validation.Match(slugPattern).Error("Enter a valid slug consisting of letters, numbers, underscores or hyphens."),
		),
	)
}
