// Package catalog is the read-only set of purchasable products and gift
// options the storefront selects from.
package catalog

import "encoding/json"

// Kind discriminates ordinary products from gift-option items.
type Kind string

const (
	KindProduct    Kind = "product"
	KindGiftOption Kind = "gift"
)

// Category is the tag used to assign items to gift steps and product pages.
type Category string

// Gift-option categories.
const (
	CategoryChocolates  Category = "chocolates"
	CategoryCandies     Category = "candies"
	CategoryBoxes       Category = "boxes"
	CategoryDecorations Category = "decoration"
	CategoryWraps       Category = "packets"
)

// Item is one catalogue entry. Prices are whole currency units.
type Item struct {
	ID          string   `json:"id" yaml:"id"`
	Kind        Kind     `json:"kind" yaml:"kind,omitempty"`
	Name        string   `json:"name" yaml:"name"`
	Price       int64    `json:"price" yaml:"price"`
	OldPrice    int64    `json:"old_price,omitempty" yaml:"old_price,omitempty"`
	Brand       string   `json:"brand,omitempty" yaml:"brand,omitempty"`
	Image       string   `json:"image" yaml:"image"`
	Category    Category `json:"category" yaml:"category"`
	SubCategory string   `json:"sub_category,omitempty" yaml:"sub_category,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// SortTag is the secondary tag steps sort by: the first tag, or "".
func (i Item) SortTag() string {
	if len(i.Tags) == 0 {
		return ""
	}
	return i.Tags[0]
}

// IsProduct reports whether the item is an ordinary product.
func (i Item) IsProduct() bool { return i.Kind == KindProduct }

// Clone returns a deep copy so snapshots never alias catalogue slices.
func (i Item) Clone() Item {
	if i.Tags != nil {
		i.Tags = append([]string(nil), i.Tags...)
	}
	return i
}

// Classify derives the kind of an item that arrived without one.
//
// Only items with a product shape (an old price or a brand) are products.
func Classify(i Item) Kind {
	if i.OldPrice > 0 || i.Brand != "" {
		return KindProduct
	}
	return KindGiftOption
}

// UnmarshalJSON fills in a missing kind for items persisted before the
// discriminant existed.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = Item(p)
	if i.Kind == "" {
		i.Kind = Classify(*i)
	}
	return nil
}
