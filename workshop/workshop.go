// Package workshop looks up Steam Workshop item titles so mod list
// lines can be written without visiting the workshop page.
package workshop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/greenmatthew/DayZ-Server-Manager/manager"
)

const DefaultBaseURL = "https://steamcommunity.com/sharedfiles/filedetails/"

var ErrNoTitle = errors.New("workshop item title not found")

var titleSel = cascadia.MustCompile(".workshopItemTitle")

type Client struct {
	Client  *http.Client
	BaseURL string
}

func (c *Client) ItemURL(id uint64) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{"id": {strconv.FormatUint(id, 10)}}
	return base + "?" + q.Encode()
}

// Title fetches the workshop page of id and returns the item title.
func (c *Client) Title(ctx context.Context, id uint64) (string, error) {
	u := c.ItemURL(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	r := resp.Body
	defer func() {
		err := r.Close()
		if err != nil {
			log.Printf("close %q: %+v", u, err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %q: %s", u, resp.Status)
	}

	// Don’t read HTML pages larger than 4MiB.
	lr := io.LimitReader(r, 4*1024*1024)
	return ParseTitle(lr)
}

// ParseTitle extracts the item title from a workshop page.
func ParseTitle(r io.Reader) (string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	n := titleSel.MatchFirst(root)
	if n == nil {
		return "", ErrNoTitle
	}
	var b strings.Builder
	text(&b, n)
	title := strings.TrimSpace(b.String())
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}

func text(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text(b, c)
	}
}

// ModName turns a workshop title into a valid mod name by dropping
// unsupported characters and collapsing whitespace. The result is
// empty if nothing usable is left.
func ModName(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_', r == '-', r == '.':
			b.WriteRune(r)
		case r == ' ', r == '\t':
			b.WriteByte(' ')
		}
	}
	name := strings.Join(strings.Fields(b.String()), " ")
	name = strings.Trim(name, ". ")
	if !manager.ValidModName(name) {
		return ""
	}
	return name
}

// Line formats a mod list line for id and title, keeping the original
// title as a comment when it had to be changed.
func Line(id uint64, title string) (string, error) {
	name := ModName(title)
	if name == "" {
		return "", fmt.Errorf("%d: no valid mod name in title %q", id, title)
	}
	line := fmt.Sprintf("%d, %s", id, name)
	if name != title {
		line += " # " + strings.ReplaceAll(title, "\n", " ")
	}
	return line, nil
}
