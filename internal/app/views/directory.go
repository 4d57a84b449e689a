package views

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentapi"
)

// FilterMembers returns the members whose name, profession or business help
// contains query, ignoring case. An empty query matches everyone.
func FilterMembers(ms []domain.Member, query string) []domain.Member {
	q := domain.FoldForSearch(query)
	out := make([]domain.Member, 0, len(ms))
	for _, m := range ms {
		if q == "" ||
			strings.Contains(domain.FoldForSearch(m.Name), q) ||
			strings.Contains(domain.FoldForSearch(m.Profession), q) ||
			strings.Contains(domain.FoldForSearch(m.BusinessHelp), q) {
			out = append(out, m)
		}
	}
	return out
}

// Directory is the member directory page.
type Directory struct {
	mu       sync.RWMutex
	members  []domain.Member
	fallback bool
	query    string
}

// LoadDirectory lists members once; the result backs the directory for its lifetime.
func LoadDirectory(ctx context.Context, api contentapi.MemberAPI, ds fallback.Dataset, log zerolog.Logger) *Directory {
	res := Load(ctx, log, domain.KindMembers, api.ListMembers, ds.Members)
	return &Directory{members: res.Items, fallback: res.Fallback}
}

func (d *Directory) SetQuery(q string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.query = q
}

func (d *Directory) Query() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.query
}

// Visible returns the members matching the current query.
func (d *Directory) Visible() []domain.Member {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneMembers(FilterMembers(d.members, d.query))
}

// All returns every loaded member regardless of the query.
func (d *Directory) All() []domain.Member {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneMembers(d.members)
}

// Fallback reports whether the directory is showing the fallback snapshot.
func (d *Directory) Fallback() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fallback
}

func cloneMembers(ms []domain.Member) []domain.Member {
	out := make([]domain.Member, len(ms))
	for i, m := range ms {
		out[i] = m.Clone()
	}
	return out
}
