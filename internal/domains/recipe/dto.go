package recipe

import (
	"encoding/json"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"foodgram-backend/internal/infrastructure/storage"
)

const (
	maxNameLength = 200
	minSmallInt   = 1
	maxSmallInt   = 32767
)

var errNoFile = errors.New("No file was submitted.")

// IngredientInput is one (ingredient id, amount) pair of a write request
type IngredientInput struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

func (i IngredientInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Required),
		validation.Field(&i.Amount, validation.Required, validation.Min(minSmallInt), validation.Max(maxSmallInt)),
	)
}

// ImageField is the image of a write request.
// In JSON it is a data URI; a multipart upload fills Upload directly.
type ImageField struct {
	Upload *storage.Upload
	err    error
}

func NewImageField(upload *storage.Upload) *ImageField {
	return &ImageField{Upload: upload}
}

// UnmarshalJSON never fails so a bad image becomes a field error instead of a parse error
func (f *ImageField) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		f.err = storage.ErrNotDataURI
		return nil
	}
	if raw == "" {
		return nil
	}
	f.Upload, f.err = storage.DecodeDataURI(raw)
	return nil
}

func (f ImageField) Validate() error {
	if f.err != nil {
		return f.err
	}
	if f.Upload == nil || len(f.Upload.Data) == 0 {
		return errNoFile
	}
	return nil
}

// WriteRequest is the create/update payload.
// A nil field was not sent; on update it is left untouched.
type WriteRequest struct {
	Ingredients []IngredientInput `json:"ingredients"`
	Tags        []int64           `json:"tags"`
	Image       *ImageField       `json:"image"`
	Name        *string           `json:"name"`
	Text        *string           `json:"text"`
	CookingTime *int              `json:"cooking_time"`
}

// Normalize trims the text fields
func (r *WriteRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Text != nil {
		text := strings.TrimSpace(*r.Text)
		r.Text = &text
	}
}

// Validate checks the payload. partial is true for PATCH.
func (r WriteRequest) Validate(partial bool) error {
	required := !partial
	return validation.ValidateStruct(&r,
		validation.Field(&r.Ingredients,
			validation.When(required || r.Ingredients != nil, validation.Required.Error("Select at least one ingredient.")),
			validation.By(uniqueIngredients),
		),
		validation.Field(&r.Tags,
			validation.When(required || r.Tags != nil, validation.Required.Error("Select at least one tag.")),
			validation.By(uniqueTags),
		),
		validation.Field(&r.Image,
			validation.When(required, validation.Required.Error("No file was submitted.")),
		),
		validation.Field(&r.Name,
			validation.When(required, validation.Required),
			validation.NilOrNotEmpty,
			validation.RuneLength(1, maxNameLength),
		),
		validation.Field(&r.Text,
			validation.When(required, validation.Required),
			validation.NilOrNotEmpty,
		),
		validation.Field(&r.CookingTime,
			validation.When(required, validation.Required),
			validation.NilOrNotEmpty,
			validation.Min(minSmallInt),
			validation.Max(maxSmallInt),
		),
	)
}

func uniqueIngredients(value interface{}) error {
	items, _ := value.([]IngredientInput)
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return errors.New("Ingredients must not repeat.")
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

func uniqueTags(value interface{}) error {
	ids, _ := value.([]int64)
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return errors.New("Tags must not repeat.")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// IngredientIDs lists the ingredient ids of the request
func (r WriteRequest) IngredientIDs() []int64 {
	ids := make([]int64, 0, len(r.Ingredients))
	for _, item := range r.Ingredients {
		ids = append(ids, item.ID)
	}
	return ids
}
