// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/media-engine/internal/httputil"
	"github.com/pdiddy/media-engine/pkg/types"
)

// googleBooksBase is the Google Books API root. Declared as a var so tests
// can substitute an httptest server.
var googleBooksBase = "https://www.googleapis.com/books/v1"

// maxVolumesPerPage is the largest maxResults Google Books accepts.
const maxVolumesPerPage = 40

// BookField restricts a book query to one volume attribute.
type BookField string

const (
	FieldAny     BookField = ""
	FieldTitle   BookField = "title"
	FieldAuthor  BookField = "author"
	FieldISBN    BookField = "isbn"
	FieldSubject BookField = "subject"
)

// ParseBookField maps a flag value to a BookField. "any" and "" both mean
// an unqualified full-text query.
func ParseBookField(s string) (BookField, error) {
	switch f := BookField(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldAny, FieldTitle, FieldAuthor, FieldISBN, FieldSubject:
		return f, nil
	case "any":
		return FieldAny, nil
	default:
		return "", fmt.Errorf("unknown book field %q (want any, title, author, isbn or subject)", s)
	}
}

// BookQuery is a book search request.
type BookQuery struct {
	Text  string
	Field BookField

	// MaxResults is passed through to the provider; zero uses its default (10).
	MaxResults int
}

// String renders the query in Google Books syntax, e.g. "inauthor:le guin".
func (q BookQuery) String() string {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return ""
	}
	switch q.Field {
	case FieldTitle:
		return "intitle:" + text
	case FieldAuthor:
		return "inauthor:" + text
	case FieldISBN:
		return "isbn:" + text
	case FieldSubject:
		return "subject:" + text
	default:
		return text
	}
}

// Volume is one Google Books volume as returned by search and detail calls.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo carries the bibliographic fields of a volume.
type VolumeInfo struct {
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	Description   string     `json:"description"`
	ImageLinks    ImageLinks `json:"imageLinks"`
	Categories    []string   `json:"categories"`
	PublishedDate string     `json:"publishedDate"`
	AverageRating *float64   `json:"averageRating"`
	RatingsCount  *int       `json:"ratingsCount"`
}

// ImageLinks holds cover image URLs.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// GoogleBooks is the book search and detail adapter.
type GoogleBooks struct {
	client *httputil.Client
	apiKey string
}

// NewGoogleBooks builds the adapter. cfg.APIKey is optional for Google Books.
func NewGoogleBooks(cfg types.ProviderConfig, httpClient *http.Client) *GoogleBooks {
	return &GoogleBooks{
		client: httputil.NewClient("googlebooks", cfg, httpClient),
		apiKey: cfg.APIKey,
	}
}

// Name returns the provider identifier.
func (g *GoogleBooks) Name() string { return "googlebooks" }

// SearchVolumes runs a volume search. It returns nil when the query is empty
// or the provider could not be reached.
func (g *GoogleBooks) SearchVolumes(ctx context.Context, q BookQuery) []Volume {
	text := q.String()
	if text == "" {
		return nil
	}

	params := url.Values{"q": {text}}
	if q.MaxResults > 0 {
		params.Set("maxResults", strconv.Itoa(min(q.MaxResults, maxVolumesPerPage)))
	}
	if g.apiKey != "" {
		params.Set("key", g.apiKey)
	}

	var resp volumesResponse
	if err := g.client.GetJSON(ctx, googleBooksBase+"/volumes?"+params.Encode(), &resp); err != nil {
		logFailure(ctx, g.Name(), "search", err)
		return nil
	}
	return resp.Items
}

// Volume fetches one volume by id. It returns nil when the volume does not
// exist or the provider could not be reached.
func (g *GoogleBooks) Volume(ctx context.Context, id string) *Volume {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	reqURL := googleBooksBase + "/volumes/" + url.PathEscape(id)
	if g.apiKey != "" {
		reqURL += "?" + url.Values{"key": {g.apiKey}}.Encode()
	}

	var v Volume
	if err := g.client.GetJSON(ctx, reqURL, &v); err != nil {
		logFailure(ctx, g.Name(), "detail", err)
		return nil
	}
	if v.ID == "" {
		return nil
	}
	return &v
}
