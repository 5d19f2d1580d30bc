// Package eliteprospects reads an organization's prospects and their profiles from
// eliteprospects.com.
package eliteprospects

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"prospects/internal/components/assert"
	"prospects/internal/components/chrono"
	"prospects/internal/components/telemetry"
	"prospects/internal/fetch"
	"prospects/internal/prospects"
	"prospects/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/PuerkitoBio/purell"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("prospects/internal/scrapers/eliteprospects")

const (
	report_organization = "scraper.organization"
	report_profile      = "scraper.profile"
)

// Fetcher is satisfied by *fetch.Cache.
type Fetcher interface {
	Get(ctx context.Context, req fetch.Request) ([]byte, error)
}

type Scraper struct {
	fetcher Fetcher
	time    chrono.TimeAPI
	tel     telemetry.API
}

func NewScraper(fetcher Fetcher, time chrono.TimeAPI, tel telemetry.API) Scraper {
	assert.NotNil(fetcher)
	assert.NotNil(time)
	assert.NotNil(tel)

	return Scraper{
		fetcher: fetcher,
		time:    time,
		tel:     telemetry.NewScopedAPI("eliteprospects", tel),
	}
}

// NormalizeURL is the form player urls are keyed by in a snapshot. It is only a key,
// pages are always fetched from the url the site linked to.
func NormalizeURL(u *url.URL) string {
	// purell rewrites the url it is given
	key := *u
	return purell.NormalizeURL(
		&key,
		purell.FlagsSafe|
			purell.FlagsUsuallySafeGreedy|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
}

func playerKey(link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse player url: %w", err)
	}
	return NormalizeURL(parsed), nil
}

func (s Scraper) document(ctx context.Context, link string) (*goquery.Document, error) {
	body, err := s.fetcher.Get(ctx, fetch.Request{URL: link})
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html of %s: %w", link, err)
	}
	return doc, nil
}

// Organization lists the profile urls of every player on the organization's "in the system"
// page, in page order. Links that share a NormalizeURL key are listed once.
func (s Scraper) Organization(ctx context.Context, link string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Organization")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	base, err := url.Parse(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid organization url")
		return nil, fmt.Errorf("parse organization url: %w", err)
	}

	doc, err := s.document(ctx, link)
	if err != nil {
		s.tel.ReportBroken(report_organization, err, link)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch organization")
		return nil, err
	}

	anchors := htmlutil.GetAnchors(ctx, doc.Find("table.in-the-system td.player a"), base)

	seen := map[string]bool{}
	var players []string
	for _, a := range anchors {
		parsed, err := url.Parse(a.Href)
		if err != nil {
			s.tel.ReportWarning(report_organization, err, a.Href)
			continue
		}
		key := NormalizeURL(parsed)
		if seen[key] {
			continue
		}
		seen[key] = true
		parsed.Fragment = ""
		parsed.RawFragment = ""
		players = append(players, parsed.String())
	}

	s.tel.ReportDebug("organization players", link, telemetry.KV{Key: "count", Value: len(players)})
	return players, nil
}

// Player fetches and parses one profile, the player's URL is the NormalizeURL key of link.
// Unknown positions, handedness or draft strings are fatal to the player.
func (s Scraper) Player(ctx context.Context, link string) (prospects.Player, error) {
	ctx, span := tracer.Start(ctx, "Player")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	key, err := playerKey(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid profile url")
		return prospects.Player{}, err
	}

	doc, err := s.document(ctx, link)
	if err != nil {
		s.tel.ReportBroken(report_profile, err, link)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch profile")
		return prospects.Player{}, err
	}

	player, err := s.parseProfile(doc, link)
	if err != nil {
		s.tel.ReportBroken(report_profile, err, link)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse profile")
		return prospects.Player{}, fmt.Errorf("profile %s: %w", link, err)
	}
	player.URL = key
	return player, nil
}

// Snapshot reads every player of every organization. The first failure aborts the run,
// pages fetched before it stay cached.
func (s Scraper) Snapshot(ctx context.Context, organizations []string) (prospects.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Snapshot")
	defer span.End()

	snap := prospects.Snapshot{
		TakenOn: s.time.Now(),
		Players: map[string]prospects.Player{},
	}

	for _, org := range organizations {
		links, err := s.Organization(ctx, org)
		if err != nil {
			return prospects.Snapshot{}, err
		}
		for _, link := range links {
			key, err := playerKey(link)
			if err != nil {
				return prospects.Snapshot{}, err
			}
			if _, done := snap.Players[key]; done {
				continue
			}
			player, err := s.Player(ctx, link)
			if err != nil {
				return prospects.Snapshot{}, err
			}
			snap.Players[key] = player
		}
	}

	s.tel.ReportCount("snapshot.players", int64(len(snap.Players)))
	return snap, nil
}
