package shared

// Queues
const (
	QueueDefault = "default"
	QueueImages  = "images"
)

// Task types
const (
	TypeDeleteRecipeImage = "recipe:delete_image"
	TypeSweepOrphanImages = "recipe:sweep_orphan_images"
)

// DeleteRecipeImagePayload asks the worker to drop an image that is no longer referenced
type DeleteRecipeImagePayload struct {
	ImageKey string `json:"image_key"`
	Trigger  string `json:"trigger"` // recipe_deleted, image_replaced
}

// SweepOrphanImagesPayload is the payload of the nightly sweep.
// Objects newer than MinAge are left alone so in-flight uploads are not removed.
type SweepOrphanImagesPayload struct {
	Prefix        string `json:"prefix"`
	MinAgeSeconds int    `json:"min_age_seconds"`
}

// RecipeImagePrefix is where recipe images live in the bucket
const RecipeImagePrefix = "recipes/"
