package view

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

// CopiedResetDelay is how long the "copied" badge stays up.
const CopiedResetDelay = 2 * time.Second

// Platform share-intent endpoints. Query parameter names are fixed by the platforms.
const (
	facebookShareURL = "https://www.facebook.com/sharer/sharer.php"
	twitterShareURL  = "https://twitter.com/intent/tweet"
	linkedInShareURL = "https://www.linkedin.com/sharing/share-offsite/"
	whatsAppShareURL = "https://wa.me/"
)

type ShareLinks struct {
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
	Copy     string `json:"copy"`
}

// ShareText is the message pre-filled on every platform.
func ShareText(title, priceLabel string) string {
	if priceLabel == "" {
		return "Check out this property: " + title
	}
	return "Check out this property: " + title + " - " + priceLabel
}

// BuildShareLinks derives every share URL from the page URL and the
// listing's title and formatted price.
func BuildShareLinks(pageURL, title, priceLabel string) ShareLinks {
	text := ShareText(title, priceLabel)
	link := encodeComponent(pageURL)

	return ShareLinks{
		Facebook: facebookShareURL + "?u=" + link,
		Twitter:  twitterShareURL + "?url=" + link + "&text=" + encodeComponent(text),
		LinkedIn: linkedInShareURL + "?url=" + link,
		WhatsApp: whatsAppShareURL + "?text=" + encodeComponent(text) + "%20" + pageURL,
		Email:    "mailto:?subject=" + encodeComponent(title) + "&body=" + encodeComponent(text+"\n\n"+pageURL),
		Copy:     pageURL,
	}
}

// componentUnescape restores what a URI component leaves literal:
// spaces are %20 and !'()* stay as they are.
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

// Clipboard is where CopyIndicator writes the link.
type Clipboard interface {
	WriteText(text string) error
}

// CopyIndicator drives the "Link copied" badge. The badge reverts a fixed
// delay after it was raised; copies inside that window do not extend it.
type CopyIndicator struct {
	mu        sync.Mutex
	clipboard Clipboard
	delay     time.Duration
	copied    bool
	timer     *time.Timer
	closed    bool
}

func NewCopyIndicator(clipboard Clipboard) *CopyIndicator {
	return newCopyIndicator(clipboard, CopiedResetDelay)
}

func newCopyIndicator(clipboard Clipboard, delay time.Duration) *CopyIndicator {
	return &CopyIndicator{clipboard: clipboard, delay: delay}
}

func (c *CopyIndicator) Copy(link string) error {
	if err := c.clipboard.WriteText(link); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrViewClosed
	}
	c.copied = true
	if c.timer == nil {
		c.timer = time.AfterFunc(c.delay, c.reset)
	}
	return nil
}

func (c *CopyIndicator) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.copied = false
	c.timer = nil
}

func (c *CopyIndicator) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// Close cancels a pending revert; the indicator is unusable afterwards.
func (c *CopyIndicator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
