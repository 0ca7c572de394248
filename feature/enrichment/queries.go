package enrichment

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Wikidata classes used in the lookups.
const (
	classFilm     = "Q11424"
	classTvSeries = "Q5398426"
)

var entityID = regexp.MustCompile(`^Q[0-9]+$`)

const titleQuery = `SELECT ?item WHERE {
  ?item wdt:P31/wdt:P279* wd:%s ;
        rdfs:label %s@en ;
        wdt:P577 ?date .
  FILTER(YEAR(?date) = %d)
} LIMIT 1`

// Seasons and episodes are ordered within their parent by the series ordinal qualifier.
const childrenQuery = `SELECT ?item ?number WHERE {
  ?item p:%s ?statement .
  ?statement ps:%s wd:%s ;
             pq:P1545 ?number .
}`

// FindMovie returns the id of a film with the given English title released in year.
func (c *Client) FindMovie(ctx context.Context, title string, year int) (string, error) {
	return c.findTitle(ctx, classFilm, title, year)
}

// FindShow returns the id of a television series with the given English title first
// aired in year.
func (c *Client) FindShow(ctx context.Context, title string, year int) (string, error) {
	return c.findTitle(ctx, classTvSeries, title, year)
}

// FindSeasons maps season numbers of a series to their ids.
func (c *Client) FindSeasons(ctx context.Context, showID string) (map[int]string, error) {
	// P179: part of the series
	return c.findChildren(ctx, "P179", showID)
}

// FindEpisodes maps episode numbers of a season to their ids.
func (c *Client) FindEpisodes(ctx context.Context, seasonID string) (map[int]string, error) {
	// P4908: season
	return c.findChildren(ctx, "P4908", seasonID)
}

func (c *Client) findTitle(ctx context.Context, class, title string, year int) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", nil
	}
	rows, err := c.query(ctx, fmt.Sprintf(titleQuery, class, literal(title), year))
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if id := entity(row["item"].Value); id != "" {
			return id, nil
		}
	}
	return "", nil
}

func (c *Client) findChildren(ctx context.Context, property, parentID string) (map[int]string, error) {
	ids := make(map[int]string)
	if !entityID.MatchString(parentID) {
		return ids, nil
	}
	rows, err := c.query(ctx, fmt.Sprintf(childrenQuery, property, property, parentID))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		n, err := strconv.Atoi(row["number"].Value)
		if err != nil {
			continue
		}
		if id := entity(row["item"].Value); id != "" {
			ids[n] = id
		}
	}
	return ids, nil
}

// entity extracts Q123 from http://www.wikidata.org/entity/Q123.
func entity(uri string) string {
	id := uri[strings.LastIndexByte(uri, '/')+1:]
	if !entityID.MatchString(id) {
		return ""
	}
	return id
}

// literal quotes s as a SPARQL string literal.
func literal(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}
