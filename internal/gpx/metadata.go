package gpx

import "github.com/planbiir/gpxgeo/internal/xmltree"

func (p *parser) parseMetadata(doc xmltree.Node) Metadata {
	md := doc.FindFirst("metadata")
	if md == nil {
		p.log.Debug("No metadata element, using defaults")
		return DefaultMetadata()
	}

	meta := Metadata{
		Name:   readScalar(md, "name"),
		Desc:   readScalar(md, "desc"),
		Time:   readScalar(md, "time"),
		Author: DefaultAuthor(),
		Link:   DefaultLink(),
	}

	if author := md.FindFirst("author"); author != nil {
		meta.Author = p.parseAuthor(author)
	}
	if link := readDirectChild(md, "link"); link != nil {
		meta.Link = parseLink(link)
	}

	return meta
}

func (p *parser) parseAuthor(n xmltree.Node) Author {
	author := Author{
		Name:  readScalar(n, "name"),
		Email: DefaultAuthorEmail(),
		Link:  DefaultLink(),
	}

	if email := n.FindFirst("email"); email != nil {
		id, _ := email.Attr("id")
		domain, _ := email.Attr("domain")
		author.Email = AuthorEmail{ID: id, Domain: domain}
	} else {
		p.log.Debug("Author without email, using defaults")
	}

	if link := n.FindFirst("link"); link != nil {
		author.Link = parseLink(link)
	}

	return author
}

func parseLink(n xmltree.Node) Link {
	href, _ := n.Attr("href")
	return Link{
		Href: href,
		Text: readScalar(n, "text"),
		Type: readScalar(n, "type"),
	}
}
