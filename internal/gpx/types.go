package gpx

import (
	"encoding/json"
	"time"

	"github.com/planbiir/gpxgeo/internal/geometry"
	"github.com/planbiir/gpxgeo/internal/jsonx"
)

// Point represents a waypoint, route point or track point.
// Name, Sym, Cmt and Desc are only read for waypoints.
type Point struct {
	Lat  float64    `json:"lat"`
	Lon  float64    `json:"lon"`
	Ele  *float64   `json:"ele"`
	Time *time.Time `json:"time"`

	Name *string `json:"name"`
	Sym  *string `json:"sym"`
	Cmt  *string `json:"cmt"`
	Desc *string `json:"desc"`
}

// MarshalJSON renders NaN coordinates (possible for waypoints) as null.
func (p Point) MarshalJSON() ([]byte, error) {
	type alias Point
	return json.Marshal(struct {
		Lat any `json:"lat"`
		Lon any `json:"lon"`
		alias
	}{
		Lat:   jsonx.Float(p.Lat),
		Lon:   jsonx.Float(p.Lon),
		alias: alias(p),
	})
}

// Link is a GPX <link> element.
type Link struct {
	Href string  `json:"href"`
	Text *string `json:"text"`
	Type *string `json:"type"`
}

// AuthorEmail is the id/domain pair of a GPX <email> element.
type AuthorEmail struct {
	ID     string `json:"id"`
	Domain string `json:"domain"`
}

// Author is the <author> block of the document metadata.
type Author struct {
	Name  *string     `json:"name"`
	Email AuthorEmail `json:"email"`
	Link  Link        `json:"link"`
}

// Metadata is the document-level <metadata> block.
type Metadata struct {
	Name   *string `json:"name"`
	Desc   *string `json:"desc"`
	Time   *string `json:"time"`
	Author Author  `json:"author"`
	Link   Link    `json:"link"`
}

// RouteLike holds the fields shared by routes and tracks, together with the
// geometry derived from their points.
type RouteLike struct {
	Name   *string `json:"name"`
	Cmt    *string `json:"cmt"`
	Desc   *string `json:"desc"`
	Src    *string `json:"src"`
	Number *string `json:"number"`
	Type   *string `json:"type"`
	Link   Link    `json:"link"`

	Points    []Point            `json:"points"`
	Distance  geometry.Distance  `json:"distance"`
	Elevation geometry.Elevation `json:"elevation"`
	Slopes    geometry.Slopes    `json:"slopes"`
}

// Route is a GPX <rte>.
type Route struct {
	RouteLike
}

// Track is a GPX <trk>; points of all its segments are flattened in order.
type Track struct {
	RouteLike
}

// GPX represents a fully parsed document.
type GPX struct {
	Metadata  Metadata `json:"metadata"`
	Waypoints []Point  `json:"waypoints"`
	Routes    []Route  `json:"routes"`
	Tracks    []Track  `json:"tracks"`
}

func str(s string) *string { return &s }

// DefaultLink is used wherever a <link> element is absent.
func DefaultLink() Link {
	return Link{Href: "", Text: str(""), Type: str("")}
}

// DefaultAuthorEmail is used when an author has no <email>.
func DefaultAuthorEmail() AuthorEmail {
	return AuthorEmail{}
}

// DefaultAuthor is used when the metadata has no <author>.
func DefaultAuthor() Author {
	return Author{
		Name:  str(""),
		Email: DefaultAuthorEmail(),
		Link:  DefaultLink(),
	}
}

// DefaultMetadata is used when the document has no <metadata>.
func DefaultMetadata() Metadata {
	return Metadata{
		Name:   str(""),
		Desc:   str(""),
		Time:   str(""),
		Author: DefaultAuthor(),
		Link:   DefaultLink(),
	}
}
