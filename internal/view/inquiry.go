package view

import (
	"context"
	"fmt"
	"sync"

	"estepage_storefront/internal/model"
)

// InquiryState holds the contact form fields.
type InquiryState struct {
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Message       string            `json:"message"`
	InquiryType   model.InquiryType `json:"inquiryType"`
	PreferredDate string            `json:"preferredDate"`
	PreferredTime string            `json:"preferredTime"`
}

// SeedInquiry prefills the form from the signed-in user's profile.
func SeedInquiry(auth model.AuthContext) InquiryState {
	s := InquiryState{InquiryType: model.InquiryTypeGeneral}
	if auth.IsAuthenticated && auth.User != nil {
		s.Name = auth.User.Fullname
		s.Email = auth.User.Email
		s.Phone = auth.User.PhoneNumber
	}
	return s
}

// Validate checks the required fields. It never touches the network.
func (s InquiryState) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"message", s.Message},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Request builds the inquiry API payload. Preferred date and time only
// travel with tour requests.
func (s InquiryState) Request(propertyID string) model.InquiryRequest {
	t := s.InquiryType
	if !t.Valid() {
		t = model.InquiryTypeGeneral
	}
	req := model.InquiryRequest{
		PropertyID:  propertyID,
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		Message:     s.Message,
		InquiryType: t,
	}
	if t == model.InquiryTypeTourRequest {
		req.PreferredDate = s.PreferredDate
		req.PreferredTime = s.PreferredTime
	}
	return req
}

// InquirySender delivers inquiries to the inquiry API.
type InquirySender interface {
	SendInquiry(ctx context.Context, req model.InquiryRequest) error
}

// InquiryForm is the collapsible contact form on the detail page.
type InquiryForm struct {
	mu         sync.Mutex
	propertyID string
	seed       InquiryState
	state      InquiryState
	open       bool
	sending    bool
	sender     InquirySender
}

func NewInquiryForm(propertyID string, auth model.AuthContext, sender InquirySender) *InquiryForm {
	seed := SeedInquiry(auth)
	return &InquiryForm{
		propertyID: propertyID,
		seed:       seed,
		state:      seed,
		sender:     sender,
	}
}

// InquiryFormView is the form as rendered.
type InquiryFormView struct {
	InquiryState
	Open         bool `json:"open"`
	Sending      bool `json:"sending"`
	ShowSchedule bool `json:"showSchedule"`
}

func (f *InquiryForm) View() InquiryFormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return InquiryFormView{
		InquiryState: f.state,
		Open:         f.open,
		Sending:      f.sending,
		ShowSchedule: f.state.InquiryType == model.InquiryTypeTourRequest,
	}
}

func (f *InquiryForm) State() InquiryState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *InquiryForm) Open() {
	f.mu.Lock()
	f.open = true
	f.mu.Unlock()
}

func (f *InquiryForm) Close() {
	f.mu.Lock()
	f.open = false
	f.mu.Unlock()
}

func (f *InquiryForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Update replaces the entered values.
func (f *InquiryForm) Update(s InquiryState) {
	f.mu.Lock()
	if s.InquiryType == "" {
		s.InquiryType = model.InquiryTypeGeneral
	}
	f.state = s
	f.mu.Unlock()
}

// Submit validates, then sends. Success collapses the form and resets it to
// the seeded defaults; failure keeps it open with the input intact.
func (f *InquiryForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	state := f.state
	if err := state.Validate(); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.sender == nil {
		f.mu.Unlock()
		return fmt.Errorf("%w: no inquiry service", ErrInquiryFailed)
	}
	f.sending = true
	f.mu.Unlock()

	err := f.sender.SendInquiry(ctx, state.Request(f.propertyID))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sending = false
	if ctx.Err() != nil {
		return ErrViewClosed
	}
	if err != nil {
		f.open = true
		return fmt.Errorf("%w: %w", ErrInquiryFailed, err)
	}
	f.state = f.seed
	f.open = false
	return nil
}
