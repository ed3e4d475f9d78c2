package pubchem

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"pkpd-profile/internal/platform/httpclient"
	"pkpd-profile/internal/ports/paramsource"
)

const halfLifeHeading = "Biological Half-Life"

// Client habla con PUG-REST (búsqueda de CID) y PUG-View (secciones de texto).
type Client struct {
	http *httpclient.Client
}

func NewClient(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

type cidResponse struct {
	IdentifierList struct {
		CID []int `json:"CID"`
	} `json:"IdentifierList"`
}

// LookupCID resuelve el primer CID para un nombre de compuesto.
func (c *Client) LookupCID(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, paramsource.ErrNotFound
	}

	var out cidResponse
	path := fmt.Sprintf("/rest/pug/compound/name/%s/cids/JSON", url.PathEscape(name))
	if err := c.http.GetJSON(ctx, path, &out); err != nil {
		return 0, mapErr(err)
	}
	if len(out.IdentifierList.CID) == 0 {
		return 0, paramsource.ErrNotFound
	}
	return out.IdentifierList.CID[0], nil
}

// PUG-View anida secciones sin límite fijo; solo nos interesan los textos.
type viewSection struct {
	TOCHeading  string        `json:"TOCHeading"`
	Section     []viewSection `json:"Section"`
	Information []struct {
		Value struct {
			StringWithMarkup []struct {
				String string `json:"String"`
			} `json:"StringWithMarkup"`
		} `json:"Value"`
	} `json:"Information"`
}

type viewResponse struct {
	Record struct {
		Section []viewSection `json:"Section"`
	} `json:"Record"`
}

// HalfLifeTexts devuelve los textos libres de la sección "Biological Half-Life".
func (c *Client) HalfLifeTexts(ctx context.Context, cid int) ([]string, error) {
	var out viewResponse
	path := fmt.Sprintf("/rest/pug_view/data/compound/%d/JSON?heading=%s", cid, url.QueryEscape(halfLifeHeading))
	if err := c.http.GetJSON(ctx, path, &out); err != nil {
		return nil, mapErr(err)
	}

	texts := make([]string, 0)
	for _, s := range out.Record.Section {
		texts = collectTexts(s, texts)
	}
	if len(texts) == 0 {
		return nil, paramsource.ErrNotFound
	}
	return texts, nil
}

func collectTexts(s viewSection, acc []string) []string {
	for _, info := range s.Information {
		for _, m := range info.Value.StringWithMarkup {
			if t := strings.TrimSpace(m.String); t != "" {
				acc = append(acc, t)
			}
		}
	}
	for _, child := range s.Section {
		acc = collectTexts(child, acc)
	}
	return acc
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if httpclient.StatusCode(err) == http.StatusNotFound {
		return paramsource.ErrNotFound
	}
	return fmt.Errorf("%w: pubchem: %v", paramsource.ErrUpstream, err)
}
