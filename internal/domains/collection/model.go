package collection

import "foodgram-backend/internal/shared/apperror"

// Kind selects one of the per-user recipe lists. Both share the same table shape.
type Kind string

const (
	Favorites    Kind = "favorite"
	ShoppingCart Kind = "shopping_cart"
)

type kindDef struct {
	table      string
	constraint string
	already    *apperror.AppError
	missing    *apperror.AppError
}

var kinds = map[Kind]kindDef{
	Favorites: {
		table:      "favorites",
		constraint: "unique_favorite_recipe",
		already:    ErrAlreadyInFavorites,
		missing:    ErrNotInFavorites,
	},
	ShoppingCart: {
		table:      "shopping_cart",
		constraint: "unique_shopping_cart",
		already:    ErrAlreadyInCart,
		missing:    ErrNotInCart,
	},
}

func (k Kind) def() kindDef {
	s, ok := kinds[k]
	if !ok {
		panic("collection: unknown kind " + string(k))
	}
	return s
}

// Table is the backing table name
func (k Kind) Table() string { return k.def().table }

// UniqueConstraint is the (user_id, recipe_id) constraint of the table
func (k Kind) UniqueConstraint() string { return k.def().constraint }

// ErrAlreadyAdded is returned when the recipe is already in the list
func (k Kind) ErrAlreadyAdded() error { return k.def().already }

// ErrNotListed is returned when removing a recipe that is not in the list
func (k Kind) ErrNotListed() error { return k.def().missing }

// ShoppingItem is one aggregated shopping list line
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}
