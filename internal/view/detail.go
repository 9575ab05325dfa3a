package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"estepage_storefront/internal/model"
	"estepage_storefront/pkg/utils/format"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ListPath is where a failed detail page sends the visitor.
const ListPath = "/properties"

type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseLoaded     Phase = "loaded"
	PhaseError      Phase = "error"
	PhaseRedirected Phase = "redirected"
)

// PropertyService is the read side of the property API.
type PropertyService interface {
	GetPropertyByID(ctx context.Context, id string) (*model.Property, error)
	GetSimilarProperties(ctx context.Context, id string) ([]model.Property, error)
}

// FavoriteService answers and flips a user's favorite flag.
type FavoriteService interface {
	CheckFavorite(ctx context.Context, propertyID string) (bool, error)
	ToggleFavorite(ctx context.Context, propertyID string) (bool, error)
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient message for the visitor (a toast).
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

type Notifier interface {
	Notify(Notice)
}

type DetailDeps struct {
	Properties PropertyService
	Favorites  FavoriteService
	Inquiries  InquirySender
	Notifier   Notifier
	Prices     *format.PriceFormatter
	Logger     *zap.Logger
}

// PropertyDetail orchestrates the detail page: loading, favorite state,
// gallery and the inquiry form. Results arriving after Close are dropped.
type PropertyDetail struct {
	mu   sync.Mutex
	id   string
	auth model.AuthContext
	deps DetailDeps

	life   context.Context
	cancel context.CancelFunc

	phase           Phase
	property        *model.Property
	similar         []model.Property
	isFavorite      bool
	favoritePending bool
	redirect        string
	loadErr         error
	gallery         Gallery
	inquiry         *InquiryForm
}

func NewPropertyDetail(id string, auth model.AuthContext, deps DetailDeps) *PropertyDetail {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Prices == nil {
		deps.Prices = format.NewPriceFormatter("")
	}
	life, cancel := context.WithCancel(context.Background())
	return &PropertyDetail{
		id:      id,
		auth:    auth,
		deps:    deps,
		life:    life,
		cancel:  cancel,
		phase:   PhaseLoading,
		inquiry: NewInquiryForm(id, auth, deps.Inquiries),
	}
}

// Close ends the view's lifetime. In-flight calls are cancelled and their
// results discarded.
func (d *PropertyDetail) Close() {
	d.cancel()
}

// bind derives a context cancelled by either ctx or the view's lifetime.
func (d *PropertyDetail) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(d.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (d *PropertyDetail) alive() bool {
	return d.life.Err() == nil
}

func (d *PropertyDetail) notify(level NoticeLevel, msg string) {
	if d.deps.Notifier != nil {
		d.deps.Notifier.Notify(Notice{Level: level, Message: msg})
	}
}

// Load fetches the property, then similar listings and, with a session,
// the favorite flag. Only the primary fetch can fail the page.
func (d *PropertyDetail) Load(ctx context.Context) error {
	ctx, done := d.bind(ctx)
	defer done()

	p, err := d.deps.Properties.GetPropertyByID(ctx, d.id)

	d.mu.Lock()
	if !d.alive() {
		d.mu.Unlock()
		return ErrViewClosed
	}
	if err != nil {
		d.phase = PhaseError
		d.loadErr = fmt.Errorf("%w: %w", ErrPropertyUnavailable, err)
		d.mu.Unlock()

		d.deps.Logger.Error("Could not load property", zap.String("property_id", d.id), zap.Error(err))
		d.notify(NoticeError, "Failed to load property details")

		d.mu.Lock()
		d.phase = PhaseRedirected
		d.redirect = ListPath
		d.mu.Unlock()
		return d.loadErr
	}
	d.phase = PhaseLoaded
	d.property = p
	d.gallery = NewGallery(p.Images)
	d.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		similar, err := d.deps.Properties.GetSimilarProperties(ctx, d.id)
		if err != nil {
			d.deps.Logger.Warn("Could not load similar properties", zap.String("property_id", d.id), zap.Error(err))
			return nil
		}
		d.mu.Lock()
		if d.alive() {
			d.similar = excludeProperty(similar, d.id)
		}
		d.mu.Unlock()
		return nil
	})
	if d.auth.IsAuthenticated && d.deps.Favorites != nil {
		g.Go(func() error {
			fav, err := d.deps.Favorites.CheckFavorite(ctx, d.id)
			if err != nil {
				d.deps.Logger.Warn("Could not check favorite status", zap.String("property_id", d.id), zap.Error(err))
				return nil
			}
			d.mu.Lock()
			if d.alive() {
				d.isFavorite = fav
			}
			d.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if !d.alive() {
		return ErrViewClosed
	}
	return nil
}

func excludeProperty(props []model.Property, id string) []model.Property {
	out := make([]model.Property, 0, len(props))
	for _, p := range props {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// ToggleFavorite asks the favorite service to flip the flag and shows
// whatever it answers. Anonymous visitors are stopped before the network.
func (d *PropertyDetail) ToggleFavorite(ctx context.Context) (bool, error) {
	if !d.auth.IsAuthenticated {
		d.notify(NoticeInfo, "Please log in to add properties to your favorites")
		return false, ErrLoginRequired
	}
	if d.deps.Favorites == nil {
		return d.IsFavorite(), fmt.Errorf("%w: no favorite service", ErrFavoriteFailed)
	}

	d.mu.Lock()
	current := d.isFavorite
	d.favoritePending = true
	d.mu.Unlock()

	ctx, done := d.bind(ctx)
	defer done()
	fav, err := d.deps.Favorites.ToggleFavorite(ctx, d.id)

	d.mu.Lock()
	if !d.alive() {
		d.mu.Unlock()
		return current, ErrViewClosed
	}
	d.favoritePending = false
	if err != nil {
		d.mu.Unlock()
		d.deps.Logger.Error("Could not toggle favorite", zap.String("property_id", d.id), zap.Error(err))
		d.notify(NoticeError, "Failed to update favorites")
		return current, fmt.Errorf("%w: %w", ErrFavoriteFailed, err)
	}
	d.isFavorite = fav
	d.mu.Unlock()

	if fav {
		d.notify(NoticeSuccess, "Added to favorites")
	} else {
		d.notify(NoticeSuccess, "Removed from favorites")
	}
	return fav, nil
}

func (d *PropertyDetail) Inquiry() *InquiryForm {
	return d.inquiry
}

// SubmitInquiry sends the form bound to the view's lifetime.
func (d *PropertyDetail) SubmitInquiry(ctx context.Context) error {
	ctx, done := d.bind(ctx)
	defer done()

	err := d.inquiry.Submit(ctx)
	switch {
	case err == nil:
		d.notify(NoticeSuccess, "Your inquiry has been sent successfully. The agent will contact you soon.")
	case isValidation(err):
		d.notify(NoticeError, err.Error())
	case errors.Is(err, ErrViewClosed):
	default:
		d.deps.Logger.Error("Could not send inquiry", zap.String("property_id", d.id), zap.Error(err))
		d.notify(NoticeError, "Failed to send inquiry. Please try again.")
	}
	return err
}

func isValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Gallery navigation keeps the main view and the lightbox on one index.

func (d *PropertyDetail) SelectImage(i int) {
	d.mu.Lock()
	d.gallery = d.gallery.Select(i)
	d.mu.Unlock()
}

func (d *PropertyDetail) NextImage() {
	d.mu.Lock()
	d.gallery = d.gallery.Next()
	d.mu.Unlock()
}

func (d *PropertyDetail) PrevImage() {
	d.mu.Lock()
	d.gallery = d.gallery.Prev()
	d.mu.Unlock()
}

func (d *PropertyDetail) OpenLightbox() {
	d.mu.Lock()
	d.gallery = d.gallery.OpenLightbox()
	d.mu.Unlock()
}

func (d *PropertyDetail) CloseLightbox() {
	d.mu.Lock()
	d.gallery = d.gallery.CloseLightbox()
	d.mu.Unlock()
}

func (d *PropertyDetail) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

func (d *PropertyDetail) IsFavorite() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isFavorite
}

func (d *PropertyDetail) Property() *model.Property {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.property
}

// DetailView is the detail page as rendered.
type DetailView struct {
	Phase           Phase           `json:"phase"`
	Redirect        string          `json:"redirect,omitempty"`
	Property        *model.Property `json:"property,omitempty"`
	PriceLabel      string          `json:"priceLabel,omitempty"`
	URL             string          `json:"url,omitempty"`
	Gallery         GalleryView     `json:"gallery"`
	Similar         []Card          `json:"similar"`
	IsFavorite      bool            `json:"isFavorite"`
	FavoritePending bool            `json:"favoritePending"`
	Inquiry         InquiryFormView `json:"inquiry"`
	Share           *ShareLinks     `json:"share,omitempty"`
}

// View renders the current state. baseURL prefixes the canonical page
// path used for share links.
func (d *PropertyDetail) View(baseURL string) DetailView {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := DetailView{
		Phase:           d.phase,
		Redirect:        d.redirect,
		Property:        d.property,
		Gallery:         d.gallery.View(),
		Similar:         Cards(d.similar, d.deps.Prices),
		IsFavorite:      d.isFavorite,
		FavoritePending: d.favoritePending,
		Inquiry:         d.inquiry.View(),
	}
	if p := d.property; p != nil {
		v.PriceLabel = d.deps.Prices.Format(p.Price)
		v.URL = baseURL + PropertyPath(p.ID, p.Title)
		links := BuildShareLinks(v.URL, p.Title, v.PriceLabel)
		v.Share = &links
	}
	return v
}
