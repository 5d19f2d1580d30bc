package eliteprospects

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"prospects/internal/components/chrono"
	"prospects/internal/components/telemetry"
	"prospects/internal/fetch"
	"prospects/internal/prospects"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

var pages = map[string]string{
	"/team/64/montreal-canadiens/in-the-system": "organization.html",
	"/player/1/ivan-demidov":                    "demidov.html",
	"/player/2/jacob-fowler":                    "fowler.html",
	"/player/3/somebody":                        "unknown_position.html",
	"/player/4/linked-with-slash/":              "fowler.html",
}

type fixture struct {
	scraper Scraper
	server  *httptest.Server
	hits    *atomic.Int64
	clock   *chrono.ManualTime
	tel     *telemetry.Recorder
}

func newFixture(t testing.TB) fixture {
	hits := &atomic.Int64{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		name, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("content-type", "text/html; charset=utf-8")
		w.Write(body)
	}))
	t.Cleanup(server.Close)

	clock := chrono.NewManualTime(now)
	tel := &telemetry.Recorder{}
	cache := fetch.NewCache(fetch.Options{
		Store:     fetch.NewMemoryStore(64),
		Gate:      fetch.NewGate(fetch.GateOptions{BaseDelay: 10 * time.Second, Jitter: true}, clock),
		Transport: fetch.NewRestyTransport(fetch.TransportOptions{DisableCloudflareBypass: true}, tel),
		Time:      clock,
		Tel:       tel,
	})

	return fixture{
		scraper: NewScraper(cache, clock, tel),
		server:  server,
		hits:    hits,
		clock:   clock,
		tel:     tel,
	}
}

func (f fixture) url(path string) string {
	return f.server.URL + path
}

func TestOrganization(t *testing.T) {
	f := newFixture(t)

	players, err := f.scraper.Organization(context.Background(), f.url("/team/64/montreal-canadiens/in-the-system"))
	require.NoError(t, err)
	require.Equal(t, []string{
		f.url("/player/1/ivan-demidov"),
		f.url("/player/2/jacob-fowler"),
	}, players)
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{
			in:       "https://www.eliteprospects.com/player/1/ivan-demidov",
			expected: "https://www.eliteprospects.com/player/1/ivan-demidov",
		},
		{
			in:       "HTTPS://WWW.EliteProspects.com:443/player/1/ivan-demidov/?b=2&a=1#stats",
			expected: "https://www.eliteprospects.com/player/1/ivan-demidov?a=1&b=2",
		},
	}
	for _, c := range cases {
		parsed, err := url.Parse(c.in)
		require.NoError(t, err)
		require.Equal(t, c.expected, NormalizeURL(parsed))
	}
}

func TestPlayerFetchesLinkedURL(t *testing.T) {
	f := newFixture(t)

	player, err := f.scraper.Player(context.Background(), f.url("/player/1/ivan-demidov#stats"))
	require.NoError(t, err)
	require.Equal(t, f.url("/player/1/ivan-demidov"), player.URL)
	require.Equal(t, int64(1), f.hits.Load())

	// the page only exists with its trailing slash, the key drops it
	player, err = f.scraper.Player(context.Background(), f.url("/player/4/linked-with-slash/"))
	require.NoError(t, err)
	require.Equal(t, f.url("/player/4/linked-with-slash"), player.URL)
}

func TestOrganizationNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.scraper.Organization(context.Background(), f.url("/team/1/missing/in-the-system"))
	var transportErr *fetch.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, http.StatusNotFound, transportErr.StatusCode)
	require.Equal(t, 1, f.tel.Count("broken"))
}

func TestSkaterProfile(t *testing.T) {
	f := newFixture(t)

	player, err := f.scraper.Player(context.Background(), f.url("/player/1/ivan-demidov"))
	require.NoError(t, err)

	require.Equal(t, "Ivan Demidov", player.Name)
	require.Equal(t, prospects.POSITION_RIGHT_WING, player.Position)
	require.Equal(t, prospects.SHOOTS_LEFT, player.Shoots)
	require.Equal(t, "Russia", player.Nation)
	require.Equal(t, "Sergiyev Posad, RUS", player.Birthplace)
	require.Equal(t, 181, player.HeightCm)
	require.Equal(t, 82, player.WeightKg)
	require.Equal(t, time.Date(2005, time.December, 10, 0, 0, 0, 0, time.UTC), player.Birthday)
	require.Equal(t, &prospects.Draft{Year: 2024, Round: 1, Overall: 5, Team: "Montreal Canadiens"}, player.Draft)

	// the 2027-28 placeholder row lies in the future
	require.Len(t, player.Stats, 5)

	khl := player.Stats[1]
	require.Equal(t, 2024, khl.SeasonBegin)
	require.Equal(t, 2025, khl.SeasonEnd)
	require.Equal(t, "SKA St. Petersburg", khl.TeamName)
	require.Equal(t, "KHL", khl.LeagueName)
	require.Equal(t, 65, khl.Games)
	require.Equal(t, 49, khl.Points())
	require.True(t, khl.Injured)
	require.False(t, khl.Tournament)

	require.Equal(t, 0, player.Stats[2].PlusMinus())

	current := prospects.InSeason(player.Stats, 2027)
	require.Len(t, current, 1)
	require.Equal(t, 9, current[0].Points())

	tournament := player.Stats[4]
	require.True(t, tournament.Tournament)
	require.Equal(t, "WHC-17", tournament.LeagueName)
}

func TestGoalieProfile(t *testing.T) {
	f := newFixture(t)

	player, err := f.scraper.Player(context.Background(), f.url("/player/2/jacob-fowler"))
	require.NoError(t, err)

	require.Equal(t, prospects.POSITION_GOALIE, player.Position)
	require.Equal(t, prospects.SHOOTS_LEFT, player.Shoots)
	require.Equal(t, 2023, player.Draft.Year)
	require.Len(t, player.Stats, 2)

	// team cells span several text nodes and line breaks
	laval := player.Stats[0]
	require.Equal(t, "Laval Rocket", laval.TeamName)
	require.Nil(t, laval.Skater)
	require.Equal(t, 2.41, *laval.Goalie.GoalAverage)
	require.Equal(t, 0.918, *laval.Goalie.SavePercent)

	echl := player.Stats[1]
	require.Equal(t, 2027, echl.SeasonEnd)
	require.Equal(t, "Trois-Rivières Lions", echl.TeamName)
	require.Nil(t, echl.Goalie.GoalAverage)
	require.Nil(t, echl.Goalie.SavePercent)
}

func TestUnknownPositionIsFatal(t *testing.T) {
	f := newFixture(t)

	_, err := f.scraper.Player(context.Background(), f.url("/player/3/somebody"))
	var enumErr *prospects.InvalidEnumError
	require.True(t, errors.As(err, &enumErr))
	require.Equal(t, "position", enumErr.Kind)
}

func TestSnapshotUsesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	orgs := []string{f.url("/team/64/montreal-canadiens/in-the-system")}

	snap, err := f.scraper.Snapshot(ctx, orgs)
	require.NoError(t, err)
	require.Equal(t, now, snap.TakenOn)
	require.Len(t, snap.Players, 2)
	require.Equal(t, "Jacob Fowler", snap.Players[f.url("/player/2/jacob-fowler")].Name)
	require.Equal(t, f.url("/player/1/ivan-demidov"), snap.Players[f.url("/player/1/ivan-demidov")].URL)
	require.Equal(t, int64(3), f.hits.Load())

	// every fetch after the first one waits on the gate
	waited := 0
	for _, d := range f.clock.Slept() {
		if d > 0 {
			waited++
		}
	}
	require.Equal(t, 2, waited)

	again, err := f.scraper.Snapshot(ctx, orgs)
	require.NoError(t, err)
	require.Len(t, again.Players, 2)
	require.Equal(t, int64(3), f.hits.Load())
}
