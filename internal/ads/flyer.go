package ads

import (
	"errors"
	"strings"
	"text/template"

	"github.com/noah-isme/backend-acara/internal/pricing"
)

// ErrNotPurchased is returned when rendering a flyer for a booking that did
// not buy advertising.
var ErrNotPurchased = errors.New("booking did not purchase advertisement")

// FlyerData feeds the flyer template.
type FlyerData struct {
	CustomerName string
	EventDate    string
	PackageName  string
	Theme        string
	GuestCount   int
}

const defaultFlyer = `************************************
*  YOU ARE INVITED!                *
************************************

{{ .CustomerName }} proudly presents

    {{ .Theme }}

Package:  {{ .PackageName }}
Date:     {{ .EventDate }}
Guests:   {{ .GuestCount }}

See you there!
`

// Renderer produces text flyers for advertised bookings.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the built-in flyer template.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("flyer").Parse(defaultFlyer))}
}

// NewRendererFromTemplate parses a custom template. The template receives a
// FlyerData value.
func NewRendererFromTemplate(text string) (*Renderer, error) {
	tmpl, err := template.New("flyer").Parse(text)
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the flyer for one advertised booking.
func (r *Renderer) Render(b pricing.Booking) (string, error) {
	if !b.AdvertisementPurchased {
		return "", ErrNotPurchased
	}
	data := FlyerData{
		EventDate:   b.EventDate,
		PackageName: b.Package.Name,
		Theme:       b.Package.Theme,
		GuestCount:  b.GuestCount,
	}
	return r.render(data)
}

// RenderFor is like Render but lets the caller set the host name shown on the
// flyer.
func (r *Renderer) RenderFor(b pricing.Booking, customerName string) (string, error) {
	if !b.AdvertisementPurchased {
		return "", ErrNotPurchased
	}
	data := FlyerData{
		CustomerName: customerName,
		EventDate:    b.EventDate,
		PackageName:  b.Package.Name,
		Theme:        b.Package.Theme,
		GuestCount:   b.GuestCount,
	}
	return r.render(data)
}

func (r *Renderer) render(data FlyerData) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
