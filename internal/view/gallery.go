package view

import "strconv"

// MaxThumbnails caps the thumbnail strip. Images past it are still reachable
// with Next/Prev, in the main view and in the lightbox.
const MaxThumbnails = 6

// Gallery is the image carousel plus its lightbox overlay. Both share one
// index so they never disagree.
type Gallery struct {
	Images        []string `json:"images"`
	SelectedIndex int      `json:"selectedIndex"`
	LightboxOpen  bool     `json:"lightboxOpen"`
}

type Thumbnail struct {
	Index    int    `json:"index"`
	URL      string `json:"url"`
	Selected bool   `json:"selected"`
}

func NewGallery(images []string) Gallery {
	return Gallery{Images: append([]string{}, images...)}
}

func (g Gallery) Len() int {
	return len(g.Images)
}

func (g Gallery) Next() Gallery {
	if n := g.Len(); n > 0 {
		g.SelectedIndex = (g.SelectedIndex + 1) % n
	}
	return g
}

func (g Gallery) Prev() Gallery {
	if n := g.Len(); n > 0 {
		g.SelectedIndex = (g.SelectedIndex - 1 + n) % n
	}
	return g
}

// Select jumps to i, wrapped into range.
func (g Gallery) Select(i int) Gallery {
	if n := g.Len(); n > 0 {
		g.SelectedIndex = ((i % n) + n) % n
	}
	return g
}

func (g Gallery) OpenLightbox() Gallery {
	if g.Len() > 0 {
		g.LightboxOpen = true
	}
	return g
}

func (g Gallery) CloseLightbox() Gallery {
	g.LightboxOpen = false
	return g
}

func (g Gallery) Current() string {
	if g.Len() == 0 {
		return ""
	}
	return g.Images[g.SelectedIndex]
}

func (g Gallery) Thumbnails() []Thumbnail {
	n := g.Len()
	if n > MaxThumbnails {
		n = MaxThumbnails
	}
	thumbs := make([]Thumbnail, 0, n)
	for i := 0; i < n; i++ {
		thumbs = append(thumbs, Thumbnail{Index: i, URL: g.Images[i], Selected: i == g.SelectedIndex})
	}
	return thumbs
}

// Hidden counts the images only reachable through the arrows.
func (g Gallery) Hidden() int {
	if g.Len() <= MaxThumbnails {
		return 0
	}
	return g.Len() - MaxThumbnails
}

// GalleryView is the JSON shape rendered for the detail page.
type GalleryView struct {
	Gallery
	Current    string      `json:"current"`
	Thumbnails []Thumbnail `json:"thumbnails"`
	Hidden     int         `json:"hidden"`
	Counter    string      `json:"counter"`
}

func (g Gallery) View() GalleryView {
	counter := ""
	if g.Len() > 0 {
		counter = strconv.Itoa(g.SelectedIndex+1) + " / " + strconv.Itoa(g.Len())
	}
	return GalleryView{
		Gallery:    g,
		Current:    g.Current(),
		Thumbnails: g.Thumbnails(),
		Hidden:     g.Hidden(),
		Counter:    counter,
	}
}
