package store

import (
	"encoding/json"
	"fmt"
	"log"
)

type FavoriteItem struct {
	ProductID    int      `json:"productId"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	ComparePrice *float64 `json:"comparePrice,omitempty"`
	Image        string   `json:"image"`
	Slug         string   `json:"slug"`
	CategoryName string   `json:"categoryName"`
	CategorySlug string   `json:"categorySlug"`
}

// Favorites is a set of products keyed by product id. Variants are not
// distinguished here.
type Favorites struct {
	key       string
	items     []FavoriteItem
	persister Persister
}

func NewFavorites(key string, p Persister) *Favorites {
	f := &Favorites{key: key, persister: p}
	data, err := p.Load(key)
	if err != nil {
		log.Printf("favorites %s: load failed, starting empty: %v", key, err)
		return f
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &f.items); err != nil {
			log.Printf("favorites %s: corrupt snapshot, starting empty: %v", key, err)
			f.items = nil
		}
	}
	return f
}

func (f *Favorites) flush() error {
	data, err := json.Marshal(f.items)
	if err != nil {
		return fmt.Errorf("favorites marshal error: %w", err)
	}
	return f.persister.Save(f.key, data)
}

// Add is idempotent: adding a product already present changes nothing.
func (f *Favorites) Add(item FavoriteItem) error {
	if f.IsFavorited(item.ProductID) {
		return nil
	}
	f.items = append(f.items, item)
	return f.flush()
}

func (f *Favorites) Remove(productID int) error {
	for i, item := range f.items {
		if item.ProductID == productID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return f.flush()
		}
	}
	return nil
}

func (f *Favorites) IsFavorited(productID int) bool {
	for _, item := range f.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

func (f *Favorites) Clear() error {
	f.items = nil
	return f.flush()
}

func (f *Favorites) Count() int {
	return len(f.items)
}

func (f *Favorites) Items() []FavoriteItem {
	out := make([]FavoriteItem, len(f.items))
	copy(out, f.items)
	return out
}
