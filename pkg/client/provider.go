package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

// loadConcurrency bounds the parallel fetches of one Load
const loadConcurrency = 6

// PublicContentKeys are fetched on every Load
var PublicContentKeys = []domain.ContentKey{
	domain.KeyHome,
	domain.KeyAbout,
	domain.KeyContactPage,
	domain.KeyFooter,
	domain.KeyGallery,
	domain.KeyHeroImages,
	domain.KeyHeroTexts,
}

// LoadReport records each failed fetch by name. A partial failure still
// yields a usable State built from the fetches that succeeded.
type LoadReport struct {
	mu     sync.Mutex
	Errors map[string]error
}

func (r *LoadReport) record(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Errors == nil {
		r.Errors = make(map[string]error)
	}
	r.Errors[name] = err
}

func (r *LoadReport) OK() bool { return len(r.Errors) == 0 }

// Err joins the recorded errors in name order
func (r *LoadReport) Err() error {
	names := make([]string, 0, len(r.Errors))
	for name := range r.Errors {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]error, 0, len(names))
	for _, name := range names {
		errs = append(errs, fmt.Errorf("%s: %w", name, r.Errors[name]))
	}
	return errors.Join(errs...)
}

// Provider turns API calls into State transitions. Every mutator takes the
// current State and returns the next one; on error it returns the input
// State unchanged along with the error.
type Provider struct {
	client *Client
}

func NewProvider(c *Client) *Provider {
	return &Provider{client: c}
}

func (p *Provider) as(st State) *Client {
	return p.client.WithToken(st.Token)
}

// Load fetches everything in parallel. Admin collections are only requested
// when token is set.
func (p *Provider) Load(ctx context.Context, token string) (State, *LoadReport) {
	c := p.client.WithToken(token)
	next := State{Token: token}
	report := &LoadReport{}

	var g errgroup.Group
	g.SetLimit(loadConcurrency)

	fetch := func(name string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				report.record(name, err)
			}
			return nil
		})
	}

	fetch("menu", func() (err error) {
		next.Menu, err = c.Menu(ctx)
		return err
	})
	fetch("categories", func() (err error) {
		next.Categories, err = c.Categories(ctx)
		return err
	})
	fetch("visitors", func() (err error) {
		next.VisitorCount, err = c.VisitorCount(ctx)
		return err
	})

	contents := make([]domain.Content, len(PublicContentKeys))
	for i, key := range PublicContentKeys {
		fetch("content:"+string(key), func() error {
			raw, err := c.Content(ctx, key)
			if err != nil || raw == nil {
				return err
			}
			contents[i], err = domain.DecodeContent(key, raw)
			return err
		})
	}

	if token != "" {
		fetch("reservations", func() (err error) {
			next.Reservations, err = c.Reservations(ctx)
			return err
		})
		fetch("messages", func() (err error) {
			next.Messages, err = c.Messages(ctx)
			return err
		})
		fetch("users", func() (err error) {
			next.Users, err = c.Users(ctx)
			return err
		})
	}

	_ = g.Wait()

	for _, content := range contents {
		if content != nil {
			next = next.withContent(content)
		}
	}
	return next, report
}

// Refresh reloads st's data keeping its session, token and cart
func (p *Provider) Refresh(ctx context.Context, st State) (State, *LoadReport) {
	next, report := p.Load(ctx, st.Token)
	next.SessionToken = st.SessionToken
	next.Cart = st.Cart
	return next, report
}

func (s State) withContent(c domain.Content) State {
	switch v := c.(type) {
	case *domain.HomeContent:
		s.Home = v
	case *domain.AboutContent:
		s.About = v
	case *domain.ContactPageInfo:
		s.ContactPage = v
	case *domain.FooterContent:
		s.Footer = v
	case *domain.GalleryContent:
		s.Gallery = *v
	case *domain.HeroImages:
		s.HeroImages = *v
	case *domain.HeroTexts:
		s.HeroTexts = *v
	}
	return s
}

// Session

func (p *Provider) Login(ctx context.Context, st State, email, password string) (State, error) {
	resp, err := p.client.Login(ctx, email, password)
	if err != nil {
		return st, err
	}
	st.Token = resp.Token
	return st, nil
}

// Logout drops the token and everything only an admin can see
func (p *Provider) Logout(st State) State {
	st.Token = ""
	st.Reservations = nil
	st.Messages = nil
	st.Users = nil
	return st
}

// TrackVisit counts this session once; the server-issued session token is
// kept in the returned State and sent on later calls.
func (p *Provider) TrackVisit(ctx context.Context, st State) (State, error) {
	res, err := p.client.TrackVisit(ctx, st.SessionToken)
	if err != nil {
		return st, err
	}
	st.SessionToken = res.SessionToken
	st.VisitorCount = res.Total
	return st, nil
}

func (p *Provider) ResetVisitors(ctx context.Context, st State) (State, error) {
	if err := p.as(st).ResetVisitors(ctx); err != nil {
		return st, err
	}
	st.VisitorCount = 0
	return st, nil
}

// Menu

func menuItemID(id string) func(*domain.MenuItem) bool {
	return func(m *domain.MenuItem) bool { return m.ID == id }
}

func (p *Provider) AddMenuItem(ctx context.Context, st State, in *domain.MenuItemInput) (State, error) {
	item, err := p.as(st).CreateMenuItem(ctx, in)
	if err != nil {
		return st, err
	}
	st.Menu = replace(st.Menu, item, menuItemID(item.ID))
	return st, nil
}

func (p *Provider) UpdateMenuItem(ctx context.Context, st State, id string, in *domain.MenuItemInput) (State, error) {
	item, err := p.as(st).UpdateMenuItem(ctx, id, in)
	if err != nil {
		return st, err
	}
	st.Menu = replace(st.Menu, item, menuItemID(id))
	return st, nil
}

// DeleteMenuItem also drops the item from the cart
func (p *Provider) DeleteMenuItem(ctx context.Context, st State, id string) (State, error) {
	if err := p.as(st).DeleteMenuItem(ctx, id); err != nil {
		return st, err
	}
	st.Menu = filter(st.Menu, func(m *domain.MenuItem) bool { return m.ID != id })
	return st.RemoveFromCart(id), nil
}

// Categories

func (p *Provider) AddCategory(ctx context.Context, st State, in *domain.CategoryInput) (State, error) {
	category, err := p.as(st).CreateCategory(ctx, in)
	if err != nil {
		return st, err
	}
	st.Categories = replace(st.Categories, category, func(c *domain.Category) bool { return c.ID == category.ID })
	sortCategories(st.Categories)
	return st, nil
}

func (p *Provider) UpdateCategory(ctx context.Context, st State, id string, in *domain.CategoryInput) (State, error) {
	category, err := p.as(st).UpdateCategory(ctx, id, in)
	if err != nil {
		return st, err
	}
	st.Categories = replace(st.Categories, category, func(c *domain.Category) bool { return c.ID == id })
	sortCategories(st.Categories)
	return st, nil
}

func (p *Provider) DeleteCategory(ctx context.Context, st State, id string) (State, error) {
	if err := p.as(st).DeleteCategory(ctx, id); err != nil {
		return st, err
	}
	st.Categories = filter(st.Categories, func(c *domain.Category) bool { return c.ID != id })
	return st, nil
}

// Reservations

// SubmitReservation books a table. Signed-in callers also get the refreshed
// reservation list.
func (p *Provider) SubmitReservation(ctx context.Context, st State, req *domain.CreateReservationRequest) (State, string, error) {
	c := p.as(st)
	id, err := c.CreateReservation(ctx, req)
	if err != nil {
		return st, "", err
	}
	if st.Authenticated() {
		list, err := c.Reservations(ctx)
		if err != nil {
			return st, id, err
		}
		st.Reservations = list
	}
	return st, id, nil
}

func (p *Provider) UpdateReservationStatus(ctx context.Context, st State, id string, status domain.ReservationStatus) (State, error) {
	if err := p.as(st).UpdateReservationStatus(ctx, id, status); err != nil {
		return st, err
	}
	list := make([]*domain.Reservation, len(st.Reservations))
	for i, r := range st.Reservations {
		if r.ID == id {
			updated := *r
			updated.Status = status
			r = &updated
		}
		list[i] = r
	}
	st.Reservations = list
	return st, nil
}

func (p *Provider) DeleteReservation(ctx context.Context, st State, id string) (State, error) {
	if err := p.as(st).DeleteReservation(ctx, id); err != nil {
		return st, err
	}
	st.Reservations = filter(st.Reservations, func(r *domain.Reservation) bool { return r.ID != id })
	return st, nil
}

// Messages

func (p *Provider) SendMessage(ctx context.Context, st State, req *domain.CreateMessageRequest) (State, string, error) {
	c := p.as(st)
	id, err := c.CreateMessage(ctx, req)
	if err != nil {
		return st, "", err
	}
	if st.Authenticated() {
		list, err := c.Messages(ctx)
		if err != nil {
			return st, id, err
		}
		st.Messages = list
	}
	return st, id, nil
}

func (p *Provider) UpdateMessageStatus(ctx context.Context, st State, id string, status domain.MessageStatus) (State, error) {
	if err := p.as(st).UpdateMessageStatus(ctx, id, status); err != nil {
		return st, err
	}
	list := make([]*domain.ContactMessage, len(st.Messages))
	for i, m := range st.Messages {
		if m.ID == id {
			updated := *m
			updated.Status = status
			m = &updated
		}
		list[i] = m
	}
	st.Messages = list
	return st, nil
}

// OpenMessage returns the message and marks it read when it was unread
func (p *Provider) OpenMessage(ctx context.Context, st State, id string) (State, *domain.ContactMessage, error) {
	var msg *domain.ContactMessage
	for _, m := range st.Messages {
		if m.ID == id {
			msg = m
			break
		}
	}
	if msg == nil {
		return st, nil, &APIError{StatusCode: http.StatusNotFound, Message: "Message not found"}
	}
	if msg.Status != domain.MessageUnread {
		return st, msg, nil
	}

	next, err := p.UpdateMessageStatus(ctx, st, id, domain.MessageRead)
	if err != nil {
		return st, msg, err
	}
	read := *msg
	read.Status = domain.MessageRead
	return next, &read, nil
}

func (p *Provider) DeleteMessage(ctx context.Context, st State, id string) (State, error) {
	if err := p.as(st).DeleteMessage(ctx, id); err != nil {
		return st, err
	}
	st.Messages = filter(st.Messages, func(m *domain.ContactMessage) bool { return m.ID != id })
	return st, nil
}

// Users

func (p *Provider) AddUser(ctx context.Context, st State, req *domain.CreateUserRequest) (State, error) {
	user, err := p.as(st).CreateUser(ctx, req)
	if err != nil {
		return st, err
	}
	st.Users = replace(st.Users, user, func(u *domain.User) bool { return u.ID == user.ID })
	return st, nil
}

func (p *Provider) DeleteUser(ctx context.Context, st State, id string) (State, error) {
	if err := p.as(st).DeleteUser(ctx, id); err != nil {
		return st, err
	}
	st.Users = filter(st.Users, func(u *domain.User) bool { return u.ID != id })
	return st, nil
}

// Content

// SaveContent stores c under its key and mirrors it into the State
func (p *Provider) SaveContent(ctx context.Context, st State, c domain.Content) (State, error) {
	raw, err := domain.EncodeContent(c)
	if err != nil {
		return st, err
	}
	if err := p.as(st).SetContent(ctx, c.Key(), raw); err != nil {
		return st, err
	}
	// decode the stored form so the State never aliases the caller's value
	stored, err := domain.DecodeContent(c.Key(), raw)
	if err != nil {
		return st, err
	}
	return st.withContent(stored), nil
}
