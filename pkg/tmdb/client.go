// Package tmdb is a minimal TMDb client used to pre-fill the movie catalog
// when it is empty, as a starting point for admin curation.
package tmdb

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

type Movie struct {
	TMDBID      int32
	Title       string
	ReleaseDate time.Time
	Overview    string
	PosterPath  string
	Popularity  float64
}

type discoverResp struct {
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Results    []discoverItem `json:"results"`
}

type discoverItem struct {
	ID          int32   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	Popularity  float64 `json:"popularity"`
	Adult       bool    `json:"adult"`
}

func New(apiKey string) *Client {
	return &Client{APIKey: apiKey, BaseURL: "https://api.themoviedb.org/3", Client: &http.Client{Timeout: 15 * time.Second}}
}

// DiscoverPopular fetches popular movies sorted by popularity, up to maxPages
// pages (all pages when maxPages <= 0). Adult titles and entries without a
// release date are skipped.
func (c *Client) DiscoverPopular(language string, maxPages int) ([]Movie, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("missing TMDB API key")
	}
	var out []Movie
	for page := 1; ; page++ {
		u, _ := url.Parse(c.BaseURL + "/discover/movie")
		q := u.Query()
		q.Set("api_key", c.APIKey)
		if language != "" {
			q.Set("language", language)
		}
		q.Set("sort_by", "popularity.desc")
		q.Set("page", strconv.Itoa(page))
		u.RawQuery = q.Encode()

		req, _ := http.NewRequest(http.MethodGet, u.String(), nil)
		resp, err := c.Client.Do(req)
		if err != nil {
			return nil, err
		}
		var dr discoverResp
		func() {
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				err = fmt.Errorf("tmdb status %d", resp.StatusCode)
				return
			}
			err = json.NewDecoder(resp.Body).Decode(&dr)
		}()
		if err != nil {
			return nil, err
		}
		for _, it := range dr.Results {
			if it.ReleaseDate == "" || it.Adult {
				continue
			}
			d, e := time.Parse("2006-01-02", it.ReleaseDate)
			if e != nil {
				continue
			}
			out = append(out, Movie{
				TMDBID:      it.ID,
				Title:       it.Title,
				ReleaseDate: d,
				Overview:    it.Overview,
				PosterPath:  it.PosterPath,
				Popularity:  it.Popularity,
			})
		}
		if (maxPages > 0 && page >= maxPages) || dr.Page >= dr.TotalPages {
			break
		}
	}
	return out, nil
}
