package contentrepo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentrepo"
	"github.com/rotary-puebla/club-site-api/internal/wire"
)

var errNilDB = errors.New("nil sqlite db")

func parseID[ID ~string](id ID) (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

func formatID[ID ~string](n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// jsonArg binds encoded JSON as TEXT, or NULL for an absent value.
func jsonArg(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}

func strArg(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// MemberRepo is a SQLite implementation of contentrepo.MemberRepository.
type MemberRepo struct {
	db *sql.DB
}

func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

const memberColumns = `
	id,
	name,
	COALESCE(role, ''),
	COALESCE(profession, ''),
	COALESCE(short_description, ''),
	COALESCE(business_help, ''),
	COALESCE(image_url, ''),
	COALESCE(email, ''),
	COALESCE(whatsapp, ''),
	COALESCE(birthday, ''),
	business_url,
	socials,
	image_settings
`

func (r *MemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	if r.db == nil {
		return nil, errNilDB
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+memberColumns+` FROM members ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// SQLite lower() only folds ASCII; order in Go instead.
	domain.SortMembers(out)
	return out, nil
}

func (r *MemberRepo) Create(ctx context.Context, m domain.Member) (domain.Member, error) {
	if r.db == nil {
		return domain.Member{}, errNilDB
	}
	socials, settings, err := encodeMemberJSON(m)
	if err != nil {
		return domain.Member{}, err
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO members (
			name, role, profession, short_description, business_help, image_url,
			email, whatsapp, birthday, business_url, socials, image_settings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+memberColumns,
		m.Name, m.Role, m.Profession, m.ShortDescription, m.BusinessHelp, m.ImageURL,
		m.Email, m.WhatsApp, m.Birthday, strArg(m.BusinessURL), socials, settings,
	)
	return scanMember(row)
}

func (r *MemberRepo) Update(ctx context.Context, m domain.Member) (domain.Member, error) {
	if r.db == nil {
		return domain.Member{}, errNilDB
	}
	id, ok := parseID(m.ID)
	if !ok {
		return domain.Member{}, contentrepo.ErrNotFound
	}
	socials, settings, err := encodeMemberJSON(m)
	if err != nil {
		return domain.Member{}, err
	}
	row := r.db.QueryRowContext(ctx, `
		UPDATE members
		SET name = ?, role = ?, profession = ?, short_description = ?, business_help = ?,
		    image_url = ?, email = ?, whatsapp = ?, birthday = ?, business_url = ?,
		    socials = ?, image_settings = ?
		WHERE id = ?
		RETURNING `+memberColumns,
		m.Name, m.Role, m.Profession, m.ShortDescription, m.BusinessHelp,
		m.ImageURL, m.Email, m.WhatsApp, m.Birthday, strArg(m.BusinessURL),
		socials, settings,
		id,
	)
	return scanMember(row)
}

func (r *MemberRepo) Delete(ctx context.Context, id domain.MemberID) error {
	if r.db == nil {
		return errNilDB
	}
	n, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, n)
	return err
}

func encodeMemberJSON(m domain.Member) (socials, settings any, err error) {
	s, err := wire.EncodeSocials(m.Socials)
	if err != nil {
		return nil, nil, err
	}
	is, err := wire.EncodeImageSettings(m.ImageSettings)
	if err != nil {
		return nil, nil, err
	}
	return jsonArg(s), jsonArg(is), nil
}

func scanMember(row interface {
	Scan(dest ...any) error
}) (domain.Member, error) {
	var (
		id       int64
		m        domain.Member
		socials  sql.NullString
		settings sql.NullString
	)
	if err := row.Scan(
		&id,
		&m.Name,
		&m.Role,
		&m.Profession,
		&m.ShortDescription,
		&m.BusinessHelp,
		&m.ImageURL,
		&m.Email,
		&m.WhatsApp,
		&m.Birthday,
		&m.BusinessURL,
		&socials,
		&settings,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Member{}, contentrepo.ErrNotFound
		}
		return domain.Member{}, err
	}
	m.ID = formatID[domain.MemberID](id)

	var err error
	if socials.Valid {
		if m.Socials, err = wire.DecodeSocials([]byte(socials.String)); err != nil {
			return domain.Member{}, err
		}
	}
	if settings.Valid {
		if m.ImageSettings, err = wire.DecodeImageSettings([]byte(settings.String)); err != nil {
			return domain.Member{}, err
		}
	}
	return m, nil
}

// EventRepo is a SQLite implementation of contentrepo.EventRepository.
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `
	id,
	title,
	COALESCE(date_str, ''),
	COALESCE(time_str, ''),
	COALESCE(location, ''),
	COALESCE(description, ''),
	COALESCE(image_url, '')
`

func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	if r.db == nil {
		return nil, errNilDB
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *EventRepo) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	if r.db == nil {
		return domain.Event{}, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO events (title, date_str, time_str, location, description, image_url)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+eventColumns,
		e.Title, e.Date, e.Time, e.Location, e.Description, e.ImageURL,
	)
	return scanEvent(row)
}

func (r *EventRepo) Update(ctx context.Context, e domain.Event) (domain.Event, error) {
	if r.db == nil {
		return domain.Event{}, errNilDB
	}
	id, ok := parseID(e.ID)
	if !ok {
		return domain.Event{}, contentrepo.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		UPDATE events
		SET title = ?, date_str = ?, time_str = ?, location = ?, description = ?, image_url = ?
		WHERE id = ?
		RETURNING `+eventColumns,
		e.Title, e.Date, e.Time, e.Location, e.Description, e.ImageURL, id,
	)
	return scanEvent(row)
}

func (r *EventRepo) Delete(ctx context.Context, id domain.EventID) error {
	if r.db == nil {
		return errNilDB
	}
	n, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, n)
	return err
}

func scanEvent(row interface {
	Scan(dest ...any) error
}) (domain.Event, error) {
	var (
		id int64
		e  domain.Event
	)
	if err := row.Scan(&id, &e.Title, &e.Date, &e.Time, &e.Location, &e.Description, &e.ImageURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, contentrepo.ErrNotFound
		}
		return domain.Event{}, err
	}
	e.ID = formatID[domain.EventID](id)
	return e, nil
}

// GalleryRepo is a SQLite implementation of contentrepo.GalleryRepository.
type GalleryRepo struct {
	db *sql.DB
}

func NewGalleryRepo(db *sql.DB) *GalleryRepo {
	return &GalleryRepo{db: db}
}

const galleryColumns = `id, image_url, COALESCE(caption, ''), is_instagram, link`

func (r *GalleryRepo) List(ctx context.Context) ([]domain.GalleryItem, error) {
	if r.db == nil {
		return nil, errNilDB
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+galleryColumns+` FROM gallery_items ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.GalleryItem, 0)
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GalleryRepo) Create(ctx context.Context, g domain.GalleryItem) (domain.GalleryItem, error) {
	if r.db == nil {
		return domain.GalleryItem{}, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO gallery_items (image_url, caption, is_instagram, link)
		VALUES (?, ?, ?, ?)
		RETURNING `+galleryColumns,
		g.ImageURL, g.Caption, g.IsInstagram, strArg(g.Link),
	)
	return scanGalleryItem(row)
}

func (r *GalleryRepo) Delete(ctx context.Context, id domain.GalleryItemID) error {
	if r.db == nil {
		return errNilDB
	}
	n, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = ?`, n)
	return err
}

func scanGalleryItem(row interface {
	Scan(dest ...any) error
}) (domain.GalleryItem, error) {
	var (
		id int64
		g  domain.GalleryItem
	)
	if err := row.Scan(&id, &g.ImageURL, &g.Caption, &g.IsInstagram, &g.Link); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.GalleryItem{}, contentrepo.ErrNotFound
		}
		return domain.GalleryItem{}, err
	}
	g.ID = formatID[domain.GalleryItemID](id)
	return g, nil
}

var (
	_ contentrepo.MemberRepository  = (*MemberRepo)(nil)
	_ contentrepo.EventRepository   = (*EventRepo)(nil)
	_ contentrepo.GalleryRepository = (*GalleryRepo)(nil)
)
