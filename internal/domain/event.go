package domain

// Event is an upcoming club event. Date and Time are free-form display strings.
type Event struct {
	ID          EventID
	Title       string
	Date        string
	Time        string
	Location    string
	Description string
	ImageURL    string
}

// GalleryItem is a photo shown in the rotating gallery.
type GalleryItem struct {
	ID          GalleryItemID
	ImageURL    string
	Caption     string
	IsInstagram bool
	Link        *string
}

// Clone returns a deep copy of g.
func (g GalleryItem) Clone() GalleryItem {
	out := g
	out.Link = cloneStringPtr(g.Link)
	return out
}
