package workshop

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!doctype html>
<html><body>
<div class="workshopItemDetailsHeader">
	<div class="workshopItemTitle">%s</div>
</div>
</body></html>`

func TestParseTitle(t *testing.T) {
	title, err := ParseTitle(strings.NewReader(fmt.Sprintf(page, "DayZ-Rat")))
	require.NoError(t, err)
	assert.Equal(t, "DayZ-Rat", title)

	_, err = ParseTitle(strings.NewReader("<html><body>nothing</body></html>"))
	assert.ErrorIs(t, err, ErrNoTitle)
}

func TestTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id") {
		case "2950280649":
			fmt.Fprintf(w, page, "DayZ-Rat")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := Client{Client: srv.Client(), BaseURL: srv.URL + "/"}
	title, err := c.Title(context.Background(), 2950280649)
	require.NoError(t, err)
	assert.Equal(t, "DayZ-Rat", title)

	_, err = c.Title(context.Background(), 1)
	assert.Error(t, err)
}

func TestItemURL(t *testing.T) {
	var c Client
	assert.Equal(t, DefaultBaseURL+"?id=2950280649", c.ItemURL(2950280649))
}

func TestModName(t *testing.T) {
	tests := map[string]string{
		"DayZ-Rat":                 "DayZ-Rat",
		"[CF] Community Framework": "CF Community Framework",
		"  Code Lock  ":            "Code Lock",
		"Dabs Framework!":          "Dabs Framework",
		"VPPAdminTools v1.2.3":     "VPPAdminTools v1.2.3",
		"日本語":                      "",
		"...":                      "",
	}
	for title, want := range tests {
		assert.Equal(t, want, ModName(title), title)
	}
}

func TestLine(t *testing.T) {
	line, err := Line(2950280649, "DayZ-Rat")
	require.NoError(t, err)
	assert.Equal(t, "2950280649, DayZ-Rat", line)

	line, err = Line(1559212036, "[CF] Community Framework")
	require.NoError(t, err)
	assert.Equal(t, "1559212036, CF Community Framework # [CF] Community Framework", line)

	_, err = Line(1, "日本語")
	assert.Error(t, err)
}
