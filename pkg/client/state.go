package client

import (
	"sort"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

type CartItem struct {
	Item     *domain.MenuItem `json:"item"`
	Quantity int              `json:"quantity"`
}

// State is a snapshot of what the site shows. Values are never modified in
// place: every change builds a new State, so older snapshots stay valid and
// can be shared between goroutines.
type State struct {
	Token        string
	SessionToken string

	Menu         []*domain.MenuItem
	Categories   []*domain.Category
	VisitorCount int64

	// admin collections, only loaded with a token
	Reservations []*domain.Reservation
	Messages     []*domain.ContactMessage
	Users        []*domain.User

	Home        *domain.HomeContent
	About       *domain.AboutContent
	ContactPage *domain.ContactPageInfo
	Footer      *domain.FooterContent
	Gallery     domain.GalleryContent
	HeroImages  domain.HeroImages
	HeroTexts   domain.HeroTexts

	Cart []CartItem
}

func (s State) Authenticated() bool { return s.Token != "" }

// UnreadMessages counts messages not yet opened
func (s State) UnreadMessages() int {
	n := 0
	for _, m := range s.Messages {
		if m.Status == domain.MessageUnread {
			n++
		}
	}
	return n
}

func (s State) FeaturedItems() []*domain.MenuItem {
	var out []*domain.MenuItem
	for _, item := range s.Menu {
		if item.Featured && item.Available {
			out = append(out, item)
		}
	}
	return out
}

// ItemsInCategory matches on the category id
func (s State) ItemsInCategory(category string) []*domain.MenuItem {
	var out []*domain.MenuItem
	for _, item := range s.Menu {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// AddToCart adds qty of item, merging with an existing line
func (s State) AddToCart(item *domain.MenuItem, qty int) State {
	if item == nil || qty <= 0 {
		return s
	}
	cart := make([]CartItem, 0, len(s.Cart)+1)
	found := false
	for _, line := range s.Cart {
		if line.Item.ID == item.ID {
			line.Quantity += qty
			found = true
		}
		cart = append(cart, line)
	}
	if !found {
		cart = append(cart, CartItem{Item: item, Quantity: qty})
	}
	s.Cart = cart
	return s
}

func (s State) RemoveFromCart(itemID string) State {
	s.Cart = filter(s.Cart, func(line CartItem) bool { return line.Item.ID != itemID })
	return s
}

// UpdateCartQuantity sets the quantity of a line; zero or less removes it
func (s State) UpdateCartQuantity(itemID string, qty int) State {
	if qty <= 0 {
		return s.RemoveFromCart(itemID)
	}
	cart := make([]CartItem, len(s.Cart))
	for i, line := range s.Cart {
		if line.Item.ID == itemID {
			line.Quantity = qty
		}
		cart[i] = line
	}
	s.Cart = cart
	return s
}

func (s State) ClearCart() State {
	s.Cart = nil
	return s
}

func (s State) CartTotal() float64 {
	total := 0.0
	for _, line := range s.Cart {
		total += line.Item.Price * float64(line.Quantity)
	}
	return total
}

func (s State) CartCount() int {
	n := 0
	for _, line := range s.Cart {
		n += line.Quantity
	}
	return n
}

func filter[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// replace swaps the element matching match for v, appending when absent
func replace[T any](list []*T, v *T, match func(*T) bool) []*T {
	out := make([]*T, 0, len(list)+1)
	found := false
	for _, cur := range list {
		if match(cur) {
			out = append(out, v)
			found = true
			continue
		}
		out = append(out, cur)
	}
	if !found {
		out = append(out, v)
	}
	return out
}

func sortCategories(list []*domain.Category) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].DisplayOrder != list[j].DisplayOrder {
			return list[i].DisplayOrder < list[j].DisplayOrder
		}
		return list[i].Name < list[j].Name
	})
}
