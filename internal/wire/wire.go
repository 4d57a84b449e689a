// Package wire defines the JSON shapes exchanged with the Content API.
//
// Field names match the published site contract (camelCase). Identifiers are
// written as strings; on input both JSON strings and numbers are accepted.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/oapi-codegen/nullable"

	"github.com/rotary-puebla/club-site-api/internal/domain"
)

// ID is a record identifier on the wire.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("id must be an integer: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type Socials struct {
	Instagram *string `json:"instagram,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
}

// ImageSettings fields are individually optional on input; missing ones take the portrait defaults.
type ImageSettings struct {
	Zoom *float64 `json:"zoom,omitempty"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
}

type Member struct {
	ID               ID             `json:"id,omitempty"`
	Name             string         `json:"name"`
	Role             string         `json:"role"`
	Profession       string         `json:"profession"`
	ShortDescription string         `json:"shortDescription"`
	BusinessHelp     string         `json:"businessHelp"`
	ImageURL         string         `json:"imageUrl"`
	Email            string         `json:"email"`
	WhatsApp         string         `json:"whatsapp"`
	Birthday         string         `json:"birthday"`
	BusinessURL      *string        `json:"businessUrl,omitempty"`
	Socials          *Socials       `json:"socials,omitempty"`
	ImageSettings    *ImageSettings `json:"imageSettings,omitempty"`
}

type Event struct {
	ID          ID     `json:"id,omitempty"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type GalleryItem struct {
	ID          ID      `json:"id,omitempty"`
	ImageURL    string  `json:"imageUrl"`
	Caption     string  `json:"caption"`
	IsInstagram bool    `json:"isInstagram"`
	Link        *string `json:"link,omitempty"`
}

// DeleteRequest is the body of a DELETE on a manage-* route.
type DeleteRequest struct {
	ID ID `json:"id"`
}

// MessageResponse is returned by successful deletes.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorBody is the payload of ErrorResponse.
type ErrorBody struct {
	Code      string                            `json:"code"`
	Message   string                            `json:"message"`
	Details   nullable.Nullable[map[string]any] `json:"details,omitempty"`
	RequestID nullable.Nullable[string]         `json:"requestId,omitempty"`
}

// ErrorResponse is the envelope written for every non-2xx API response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func MemberFromDomain(m domain.Member) Member {
	out := Member{
		ID:               ID(m.ID),
		Name:             m.Name,
		Role:             m.Role,
		Profession:       m.Profession,
		ShortDescription: m.ShortDescription,
		BusinessHelp:     m.BusinessHelp,
		ImageURL:         m.ImageURL,
		Email:            m.Email,
		WhatsApp:         m.WhatsApp,
		Birthday:         m.Birthday,
		BusinessURL:      m.BusinessURL,
	}
	if m.Socials != nil {
		out.Socials = &Socials{
			Instagram: m.Socials.Instagram,
			Facebook:  m.Socials.Facebook,
			LinkedIn:  m.Socials.LinkedIn,
			Twitter:   m.Socials.Twitter,
		}
	}
	if m.ImageSettings != nil {
		is := *m.ImageSettings
		out.ImageSettings = &ImageSettings{Zoom: &is.Zoom, X: &is.X, Y: &is.Y}
	}
	return out
}

func (m Member) ToDomain() domain.Member {
	out := domain.Member{
		ID:               domain.MemberID(m.ID),
		Name:             m.Name,
		Role:             m.Role,
		Profession:       m.Profession,
		ShortDescription: m.ShortDescription,
		BusinessHelp:     m.BusinessHelp,
		ImageURL:         m.ImageURL,
		Email:            m.Email,
		WhatsApp:         m.WhatsApp,
		Birthday:         m.Birthday,
		BusinessURL:      m.BusinessURL,
	}
	if m.Socials != nil {
		out.Socials = &domain.Socials{
			Instagram: m.Socials.Instagram,
			Facebook:  m.Socials.Facebook,
			LinkedIn:  m.Socials.LinkedIn,
			Twitter:   m.Socials.Twitter,
		}
	}
	if m.ImageSettings != nil {
		is := domain.DefaultImageSettings()
		if m.ImageSettings.Zoom != nil {
			is.Zoom = *m.ImageSettings.Zoom
		}
		if m.ImageSettings.X != nil {
			is.X = *m.ImageSettings.X
		}
		if m.ImageSettings.Y != nil {
			is.Y = *m.ImageSettings.Y
		}
		out.ImageSettings = &is
	}
	return out.Clone()
}

func EventFromDomain(e domain.Event) Event {
	return Event{
		ID:          ID(e.ID),
		Title:       e.Title,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Description: e.Description,
		ImageURL:    e.ImageURL,
	}
}

func (e Event) ToDomain() domain.Event {
	return domain.Event{
		ID:          domain.EventID(e.ID),
		Title:       e.Title,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Description: e.Description,
		ImageURL:    e.ImageURL,
	}
}

func GalleryItemFromDomain(g domain.GalleryItem) GalleryItem {
	return GalleryItem{
		ID:          ID(g.ID),
		ImageURL:    g.ImageURL,
		Caption:     g.Caption,
		IsInstagram: g.IsInstagram,
		Link:        g.Link,
	}
}

func (g GalleryItem) ToDomain() domain.GalleryItem {
	return domain.GalleryItem{
		ID:          domain.GalleryItemID(g.ID),
		ImageURL:    g.ImageURL,
		Caption:     g.Caption,
		IsInstagram: g.IsInstagram,
		Link:        g.Link,
	}.Clone()
}

// The list helpers never return nil so that empty collections encode as [].

func MembersFromDomain(ms []domain.Member) []Member {
	out := make([]Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, MemberFromDomain(m))
	}
	return out
}

func EventsFromDomain(es []domain.Event) []Event {
	out := make([]Event, 0, len(es))
	for _, e := range es {
		out = append(out, EventFromDomain(e))
	}
	return out
}

func GalleryFromDomain(gs []domain.GalleryItem) []GalleryItem {
	out := make([]GalleryItem, 0, len(gs))
	for _, g := range gs {
		out = append(out, GalleryItemFromDomain(g))
	}
	return out
}

func MembersToDomain(ms []Member) []domain.Member {
	out := make([]domain.Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ToDomain())
	}
	return out
}

func EventsToDomain(es []Event) []domain.Event {
	out := make([]domain.Event, 0, len(es))
	for _, e := range es {
		out = append(out, e.ToDomain())
	}
	return out
}

func GalleryToDomain(gs []GalleryItem) []domain.GalleryItem {
	out := make([]domain.GalleryItem, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.ToDomain())
	}
	return out
}
