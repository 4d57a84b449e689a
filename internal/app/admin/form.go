package admin

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotary-puebla/club-site-api/internal/domain"
)

type FieldType int

const (
	FieldText FieldType = iota
	FieldTextArea
	FieldEmail
	FieldCheckbox
	FieldRange
)

// Field describes one form input.
type Field struct {
	Name     string
	Label    string
	Type     FieldType
	Required bool
	// Min, Max bound FieldRange values.
	Min, Max float64
}

const checkboxOn = "on"

var memberFields = []Field{
	{Name: "name", Label: "Nombre Completo", Required: true},
	{Name: "role", Label: "Rol (Ej: Presidente)", Required: true},
	{Name: "profession", Label: "Profesión", Required: true},
	{Name: "birthday", Label: "Cumpleaños (DD/MM)", Required: true},
	{Name: "imageUrl", Label: "URL Foto de Perfil", Required: true},
	{Name: "zoom", Label: "Zoom", Type: FieldRange, Min: 1, Max: 3},
	{Name: "x", Label: "Posición X", Type: FieldRange, Min: 0, Max: 100},
	{Name: "y", Label: "Posición Y", Type: FieldRange, Min: 0, Max: 100},
	{Name: "shortDescription", Label: "Descripción Corta", Type: FieldTextArea, Required: true},
	{Name: "businessHelp", Label: "Ayuda Profesional (Servicios)", Type: FieldTextArea, Required: true},
	{Name: "email", Label: "Email", Type: FieldEmail, Required: true},
	{Name: "whatsapp", Label: "WhatsApp (Num sin +)", Required: true},
	{Name: "businessUrl", Label: "URL Sitio Web (Opcional)"},
	{Name: "linkedin", Label: "LinkedIn"},
	{Name: "facebook", Label: "Facebook"},
	{Name: "instagram", Label: "Instagram"},
	{Name: "twitter", Label: "Twitter/X"},
}

var eventFields = []Field{
	{Name: "title", Label: "Título del Evento", Required: true},
	{Name: "date", Label: "Fecha (DD MMM YYYY)", Required: true},
	{Name: "time", Label: "Hora", Required: true},
	{Name: "location", Label: "Ubicación", Required: true},
	{Name: "imageUrl", Label: "URL Imagen Evento", Required: true},
	{Name: "description", Label: "Descripción", Type: FieldTextArea, Required: true},
}

var galleryFields = []Field{
	{Name: "imageUrl", Label: "URL de la Imagen", Required: true},
	{Name: "caption", Label: "Pie de foto / Descripción", Required: true},
	{Name: "isInstagram", Label: "Es post de Instagram", Type: FieldCheckbox},
	{Name: "link", Label: "Link (si es Instagram)"},
}

func fieldsFor(k domain.Kind) []Field {
	switch k {
	case domain.KindMembers:
		return memberFields
	case domain.KindEvents:
		return eventFields
	case domain.KindGallery:
		return galleryFields
	}
	return nil
}

// emailPattern is the WHATWG "valid e-mail address" production used by <input type=email>.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Form holds the values of an open create or edit form. Values are kept as
// entered; nothing is trimmed or normalized beyond what the input types do.
type Form struct {
	kind   domain.Kind
	target Target
	key    string
	values map[string]string
}

func newForm(k domain.Kind, target Target, key string) *Form {
	f := &Form{kind: k, target: target, key: key, values: make(map[string]string)}
	if k == domain.KindMembers {
		f.values["zoom"] = formatFloat(domain.DefaultImageZoom)
		f.values["x"] = formatFloat(domain.DefaultImageFocus)
		f.values["y"] = formatFloat(domain.DefaultImageFocus)
	}
	switch t := target.(type) {
	case EditMember:
		f.prefillMember(t.Member)
	case EditEvent:
		f.prefillEvent(t.Event)
	}
	return f
}

func (f *Form) prefillMember(m domain.Member) {
	v := f.values
	v["name"] = m.Name
	v["role"] = m.Role
	v["profession"] = m.Profession
	v["birthday"] = m.Birthday
	v["imageUrl"] = m.ImageURL
	v["shortDescription"] = m.ShortDescription
	v["businessHelp"] = m.BusinessHelp
	v["email"] = m.Email
	v["whatsapp"] = m.WhatsApp
	v["businessUrl"] = deref(m.BusinessURL)
	if s := m.Socials; s != nil {
		v["linkedin"] = deref(s.LinkedIn)
		v["facebook"] = deref(s.Facebook)
		v["instagram"] = deref(s.Instagram)
		v["twitter"] = deref(s.Twitter)
	}
	is := m.EffectiveImageSettings()
	if is.Zoom == 0 {
		is.Zoom = domain.DefaultImageZoom
	}
	v["zoom"] = formatFloat(is.Zoom)
	v["x"] = formatFloat(is.X)
	v["y"] = formatFloat(is.Y)
}

func (f *Form) prefillEvent(e domain.Event) {
	v := f.values
	v["title"] = e.Title
	v["date"] = e.Date
	v["time"] = e.Time
	v["location"] = e.Location
	v["imageUrl"] = e.ImageURL
	v["description"] = e.Description
}

func (f *Form) Kind() domain.Kind { return f.kind }

// Target is nil in create mode.
func (f *Form) Target() Target { return f.target }

// Editing reports whether the form updates an existing record.
func (f *Form) Editing() bool { return f.target != nil && f.target.ID() != "" }

// Key is the idempotency key sent with every create attempt from this form.
func (f *Form) Key() string { return f.key }

func (f *Form) Fields() []Field {
	return append([]Field(nil), fieldsFor(f.kind)...)
}

func (f *Form) Get(name string) string { return f.values[name] }

// Set stores a field value the way the matching input would: checkboxes are
// on or off and ranges are clamped to their bounds.
func (f *Form) Set(name, value string) error {
	field, ok := f.field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	switch field.Type {
	case FieldCheckbox:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case checkboxOn, "true", "1", "yes", "si", "sí":
			value = checkboxOn
		default:
			value = ""
		}
	case FieldRange:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("admin: %s must be a number: %w", name, err)
		}
		n = min(max(n, field.Min), field.Max)
		value = formatFloat(n)
	}
	f.values[name] = value
	return nil
}

func (f *Form) field(name string) (Field, bool) {
	for _, fd := range fieldsFor(f.kind) {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

// Validate applies the native input constraints: required fields must be
// non-empty and email fields must look like an address.
func (f *Form) Validate() error {
	bad := make(map[string]string)
	for _, fd := range fieldsFor(f.kind) {
		v := f.values[fd.Name]
		if fd.Required && strings.TrimSpace(v) == "" {
			bad[fd.Name] = "required"
			continue
		}
		if fd.Type == FieldEmail && v != "" && !emailPattern.MatchString(v) {
			bad[fd.Name] = "invalid email"
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// Payload maps the form to the record to write. The id comes from the target.
func (f *Form) Payload() domain.Record {
	v := f.values
	switch f.kind {
	case domain.KindMembers:
		m := domain.Member{
			Name:             v["name"],
			Role:             v["role"],
			Profession:       v["profession"],
			ShortDescription: v["shortDescription"],
			BusinessHelp:     v["businessHelp"],
			ImageURL:         v["imageUrl"],
			Email:            v["email"],
			WhatsApp:         v["whatsapp"],
			Birthday:         v["birthday"],
			BusinessURL:      optional(v["businessUrl"]),
			Socials: &domain.Socials{
				LinkedIn:  optional(v["linkedin"]),
				Facebook:  optional(v["facebook"]),
				Instagram: optional(v["instagram"]),
				Twitter:   optional(v["twitter"]),
			},
			ImageSettings: &domain.ImageSettings{
				Zoom: parseFloat(v["zoom"], domain.DefaultImageZoom),
				X:    parseFloat(v["x"], domain.DefaultImageFocus),
				Y:    parseFloat(v["y"], domain.DefaultImageFocus),
			},
		}
		if t, ok := f.target.(EditMember); ok {
			m.ID = t.Member.ID
		}
		return m
	case domain.KindEvents:
		e := domain.Event{
			Title:       v["title"],
			Date:        v["date"],
			Time:        v["time"],
			Location:    v["location"],
			Description: v["description"],
			ImageURL:    v["imageUrl"],
		}
		if t, ok := f.target.(EditEvent); ok {
			e.ID = t.Event.ID
		}
		return e
	default:
		return domain.GalleryItem{
			ImageURL:    v["imageUrl"],
			Caption:     v["caption"],
			IsInstagram: v["isInstagram"] == checkboxOn,
			Link:        optional(v["link"]),
		}
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloat(s string, def float64) float64 {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return n
}
