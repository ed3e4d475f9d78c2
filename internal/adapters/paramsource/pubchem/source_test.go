package pubchem

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pkpd-profile/internal/platform/httpclient"
	"pkpd-profile/internal/ports/paramsource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewBody = `{
  "Record": {
    "Section": [{
      "TOCHeading": "Pharmacology and Biochemistry",
      "Section": [{
        "TOCHeading": "Biological Half-Life",
        "Information": [
          {"Value": {"StringWithMarkup": [{"String": "The elimination half-life of vancomycin is 4 to 6 hours in adults."}]}}
        ]
      }]
    }]
  }
}`

func newTestSource(t *testing.T, h http.HandlerFunc) *Source {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	hc, err := httpclient.New(httpclient.Options{BaseURL: ts.URL, Backoff: time.Millisecond})
	require.NoError(t, err)
	return NewSource(NewClient(hc))
}

func TestSource_Lookup_ParsesHalfLife(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/rest/pug/compound/name/vancomycin/cids/JSON":
			_, _ = w.Write([]byte(`{"IdentifierList":{"CID":[14969]}}`))
		case r.URL.Path == "/rest/pug_view/data/compound/14969/JSON":
			assert.Equal(t, halfLifeHeading, r.URL.Query().Get("heading"))
			_, _ = w.Write([]byte(viewBody))
		default:
			http.NotFound(w, r)
		}
	})

	p, err := src.Lookup(context.Background(), "vancomycin")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, p.HalfLife, 1e-9)
	assert.Equal(t, PlaceholderVd, p.Vd)
	assert.Nil(t, p.MIC)
	assert.True(t, p.Stub)
	assert.Equal(t, Origin, p.Origin)
}

func TestSource_Lookup_UnknownCompound(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"Fault":{"Code":"PUGREST.NotFound"}}`, http.StatusNotFound)
	})

	_, err := src.Lookup(context.Background(), "notadrug")
	assert.ErrorIs(t, err, paramsource.ErrNotFound)
}

func TestSource_Lookup_UnparseableText(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/rest/pug/compound/") {
			_, _ = w.Write([]byte(`{"IdentifierList":{"CID":[1]}}`))
			return
		}
		_, _ = w.Write([]byte(`{"Record":{"Section":[{"Information":[{"Value":{"StringWithMarkup":[{"String":"Half-life depends on renal function."}]}}]}]}}`))
	})

	_, err := src.Lookup(context.Background(), "x")
	assert.ErrorIs(t, err, paramsource.ErrParse)
}

func TestSource_Lookup_UpstreamFailure(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	})

	_, err := src.Lookup(context.Background(), "vancomycin")
	assert.ErrorIs(t, err, paramsource.ErrUpstream)
}
