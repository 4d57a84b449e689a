package contentrepo

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentrepo"
	"github.com/rotary-puebla/club-site-api/internal/wire"
)

var errNilPool = errors.New("nil postgres pool")

// parseID converts a store id to the SERIAL column type. ok=false means no row can match.
func parseID[ID ~string](id ID) (int32, bool) {
	n, err := strconv.ParseInt(string(id), 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

func formatID[ID ~string](n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// MemberRepo is a Postgres implementation of contentrepo.MemberRepository.
type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
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
	if r.pool == nil {
		return nil, errNilPool
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+memberColumns+`
		FROM members
		ORDER BY lower(name) ASC, id ASC
	`)
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
	// Server collation may differ from FoldForSearch; order in Go.
	domain.SortMembers(out)
	return out, nil
}

func (r *MemberRepo) Create(ctx context.Context, m domain.Member) (domain.Member, error) {
	if r.pool == nil {
		return domain.Member{}, errNilPool
	}
	socials, settings, err := encodeMemberJSON(m)
	if err != nil {
		return domain.Member{}, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO members (
			name,
			role,
			profession,
			short_description,
			business_help,
			image_url,
			email,
			whatsapp,
			birthday,
			business_url,
			socials,
			image_settings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+memberColumns,
		m.Name,
		m.Role,
		m.Profession,
		m.ShortDescription,
		m.BusinessHelp,
		m.ImageURL,
		m.Email,
		m.WhatsApp,
		m.Birthday,
		m.BusinessURL,
		socials,
		settings,
	)
	return scanMember(row)
}

func (r *MemberRepo) Update(ctx context.Context, m domain.Member) (domain.Member, error) {
	if r.pool == nil {
		return domain.Member{}, errNilPool
	}
	id, ok := parseID(m.ID)
	if !ok {
		return domain.Member{}, contentrepo.ErrNotFound
	}
	socials, settings, err := encodeMemberJSON(m)
	if err != nil {
		return domain.Member{}, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE members
		SET name = $2,
		    role = $3,
		    profession = $4,
		    short_description = $5,
		    business_help = $6,
		    image_url = $7,
		    email = $8,
		    whatsapp = $9,
		    birthday = $10,
		    business_url = $11,
		    socials = $12,
		    image_settings = $13
		WHERE id = $1
		RETURNING `+memberColumns,
		id,
		m.Name,
		m.Role,
		m.Profession,
		m.ShortDescription,
		m.BusinessHelp,
		m.ImageURL,
		m.Email,
		m.WhatsApp,
		m.Birthday,
		m.BusinessURL,
		socials,
		settings,
	)
	return scanMember(row)
}

func (r *MemberRepo) Delete(ctx context.Context, id domain.MemberID) error {
	if r.pool == nil {
		return errNilPool
	}
	n, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, n)
	return err
}

func encodeMemberJSON(m domain.Member) (socials, settings []byte, err error) {
	if socials, err = wire.EncodeSocials(m.Socials); err != nil {
		return nil, nil, err
	}
	if settings, err = wire.EncodeImageSettings(m.ImageSettings); err != nil {
		return nil, nil, err
	}
	return socials, settings, nil
}

func scanMember(row interface {
	Scan(dest ...any) error
}) (domain.Member, error) {
	var (
		id       int64
		m        domain.Member
		socials  []byte
		settings []byte
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
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, contentrepo.ErrNotFound
		}
		return domain.Member{}, err
	}
	m.ID = formatID[domain.MemberID](id)

	var err error
	if m.Socials, err = wire.DecodeSocials(socials); err != nil {
		return domain.Member{}, err
	}
	if m.ImageSettings, err = wire.DecodeImageSettings(settings); err != nil {
		return domain.Member{}, err
	}
	return m, nil
}

// EventRepo is a Postgres implementation of contentrepo.EventRepository.
type EventRepo struct {
	pool *pgxpool.Pool
}

func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
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
	if r.pool == nil {
		return nil, errNilPool
	}
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id ASC`)
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
	if r.pool == nil {
		return domain.Event{}, errNilPool
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, date_str, time_str, location, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+eventColumns,
		e.Title, e.Date, e.Time, e.Location, e.Description, e.ImageURL,
	)
	return scanEvent(row)
}

func (r *EventRepo) Update(ctx context.Context, e domain.Event) (domain.Event, error) {
	if r.pool == nil {
		return domain.Event{}, errNilPool
	}
	id, ok := parseID(e.ID)
	if !ok {
		return domain.Event{}, contentrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE events
		SET title = $2,
		    date_str = $3,
		    time_str = $4,
		    location = $5,
		    description = $6,
		    image_url = $7
		WHERE id = $1
		RETURNING `+eventColumns,
		id, e.Title, e.Date, e.Time, e.Location, e.Description, e.ImageURL,
	)
	return scanEvent(row)
}

func (r *EventRepo) Delete(ctx context.Context, id domain.EventID) error {
	if r.pool == nil {
		return errNilPool
	}
	n, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, n)
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
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, contentrepo.ErrNotFound
		}
		return domain.Event{}, err
	}
	e.ID = formatID[domain.EventID](id)
	return e, nil
}

// GalleryRepo is a Postgres implementation of contentrepo.GalleryRepository.
type GalleryRepo struct {
	pool *pgxpool.Pool
}

func NewGalleryRepo(pool *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{pool: pool}
}

const galleryColumns = `id, image_url, COALESCE(caption, ''), COALESCE(is_instagram, false), link`

func (r *GalleryRepo) List(ctx context.Context) ([]domain.GalleryItem, error) {
	if r.pool == nil {
		return nil, errNilPool
	}
	rows, err := r.pool.Query(ctx, `SELECT `+galleryColumns+` FROM gallery_items ORDER BY id ASC`)
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
	if r.pool == nil {
		return domain.GalleryItem{}, errNilPool
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO gallery_items (image_url, caption, is_instagram, link)
		VALUES ($1, $2, $3, $4)
		RETURNING `+galleryColumns,
		g.ImageURL, g.Caption, g.IsInstagram, g.Link,
	)
	return scanGalleryItem(row)
}

func (r *GalleryRepo) Delete(ctx context.Context, id domain.GalleryItemID) error {
	if r.pool == nil {
		return errNilPool
	}
	n, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM gallery_items WHERE id = $1`, n)
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
		if errors.Is(err, pgx.ErrNoRows) {
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
