package wire

import (
	"encoding/json"
	"fmt"

	"github.com/rotary-puebla/club-site-api/internal/domain"
)

// The SQL adapters persist socials and image settings as JSON columns in the
// wire shape. A nil value maps to SQL NULL (nil bytes), never to "{}".

func EncodeSocials(s *domain.Socials) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(Socials{Instagram: s.Instagram, Facebook: s.Facebook, LinkedIn: s.LinkedIn, Twitter: s.Twitter})
}

func DecodeSocials(b []byte) (*domain.Socials, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var s Socials
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode socials: %w", err)
	}
	return &domain.Socials{Instagram: s.Instagram, Facebook: s.Facebook, LinkedIn: s.LinkedIn, Twitter: s.Twitter}, nil
}

func EncodeImageSettings(is *domain.ImageSettings) ([]byte, error) {
	if is == nil {
		return nil, nil
	}
	v := *is
	return json.Marshal(ImageSettings{Zoom: &v.Zoom, X: &v.X, Y: &v.Y})
}

// DecodeImageSettings treats an empty object as absent, since older rows
// were written with a '{}' default.
func DecodeImageSettings(b []byte) (*domain.ImageSettings, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var w ImageSettings
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("decode image settings: %w", err)
	}
	if w.Zoom == nil && w.X == nil && w.Y == nil {
		return nil, nil
	}
	return Member{ImageSettings: &w}.ToDomain().ImageSettings, nil
}
