package domain

// Socials holds optional social profile links. A nil field means the link is unset.
type Socials struct {
	Instagram *string
	Facebook  *string
	LinkedIn  *string
	Twitter   *string
}

// ImageSettings positions a member portrait inside its frame.
// Zoom is a scale factor; X and Y are focus percentages (0-100).
type ImageSettings struct {
	Zoom float64
	X    float64
	Y    float64
}

// Portrait defaults used when a member carries no image settings.
const (
	DefaultImageZoom  = 1.0
	DefaultImageFocus = 50.0
)

// DefaultImageSettings returns the centered, unscaled framing.
func DefaultImageSettings() ImageSettings {
	return ImageSettings{Zoom: DefaultImageZoom, X: DefaultImageFocus, Y: DefaultImageFocus}
}

// Member is a club member as shown in the public directory.
//
// BusinessURL, Socials and ImageSettings are optional; nil means absent,
// which is distinct from an empty Socials value.
type Member struct {
	ID               MemberID
	Name             string
	Role             string
	Profession       string
	ShortDescription string
	BusinessHelp     string
	ImageURL         string
	Email            string
	WhatsApp         string
	// Birthday is a day/month string ("DD/MM"), no year.
	Birthday string

	BusinessURL   *string
	Socials       *Socials
	ImageSettings *ImageSettings
}

// EffectiveImageSettings returns the member's image settings or the defaults.
func (m Member) EffectiveImageSettings() ImageSettings {
	if m.ImageSettings == nil {
		return DefaultImageSettings()
	}
	return *m.ImageSettings
}

// Clone returns a deep copy of m.
func (m Member) Clone() Member {
	out := m
	out.BusinessURL = cloneStringPtr(m.BusinessURL)
	if m.Socials != nil {
		s := Socials{
			Instagram: cloneStringPtr(m.Socials.Instagram),
			Facebook:  cloneStringPtr(m.Socials.Facebook),
			LinkedIn:  cloneStringPtr(m.Socials.LinkedIn),
			Twitter:   cloneStringPtr(m.Socials.Twitter),
		}
		out.Socials = &s
	}
	if m.ImageSettings != nil {
		is := *m.ImageSettings
		out.ImageSettings = &is
	}
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
