// Package fallback provides the compiled-in content snapshot shown when the
// Content API cannot be reached.
package fallback

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/wire"
)

//go:embed dataset.json
var datasetJSON []byte

// Dataset is a read-only content snapshot. Accessors return copies.
type Dataset struct {
	version string
	members []domain.Member
	events  []domain.Event
	gallery []domain.GalleryItem
}

type datasetFile struct {
	Version string             `json:"version"`
	Members []wire.Member      `json:"members"`
	Events  []wire.Event       `json:"events"`
	Gallery []wire.GalleryItem `json:"gallery"`
}

// Parse decodes a dataset in the embedded file format.
func Parse(b []byte) (Dataset, error) {
	var f datasetFile
	if err := json.Unmarshal(b, &f); err != nil {
		return Dataset{}, fmt.Errorf("decode fallback dataset: %w", err)
	}
	if f.Version == "" {
		return Dataset{}, fmt.Errorf("decode fallback dataset: missing version")
	}
	return Dataset{
		version: f.Version,
		members: wire.MembersToDomain(f.Members),
		events:  wire.EventsToDomain(f.Events),
		gallery: wire.GalleryToDomain(f.Gallery),
	}, nil
}

// Default returns the snapshot bundled with the binary.
func Default() Dataset {
	d, err := Parse(datasetJSON)
	if err != nil {
		panic(err)
	}
	return d
}

// New builds a dataset from explicit collections, for tests and tooling.
func New(version string, members []domain.Member, events []domain.Event, gallery []domain.GalleryItem) Dataset {
	d := Dataset{version: version}
	d.members = cloneMembers(members)
	d.events = append([]domain.Event(nil), events...)
	d.gallery = cloneGallery(gallery)
	return d
}

func (d Dataset) Version() string { return d.version }

func (d Dataset) Members() []domain.Member { return cloneMembers(d.members) }

func (d Dataset) Events() []domain.Event {
	return append(make([]domain.Event, 0, len(d.events)), d.events...)
}

func (d Dataset) Gallery() []domain.GalleryItem { return cloneGallery(d.gallery) }

func cloneMembers(ms []domain.Member) []domain.Member {
	out := make([]domain.Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Clone())
	}
	return out
}

func cloneGallery(gs []domain.GalleryItem) []domain.GalleryItem {
	out := make([]domain.GalleryItem, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.Clone())
	}
	return out
}
