package services

import (
	"fmt"
	"strings"
	"time"

	"social-scraper/workers/scraper/domain"
)

// Actor identifiers.
const (
	ActorInstagram     = "apify/instagram-scraper"
	ActorTikTok        = "clockworks/tiktok-scraper"
	ActorTwitter       = "apidojo/tweet-scraper"
	ActorFacebookPosts = "apify/facebook-posts-scraper"
	ActorFacebookPages = "apify/facebook-pages-scraper"
)

// minTwitterItems is the smallest maxItems the tweet actor accepts.
const minTwitterItems = 50

// Unit is one actor invocation.
type Unit struct {
	Name    string
	Input   map[string]any
	Context domain.UnitContext
	// Batch groups units; a longer pause separates consecutive batches.
	Batch int
}

// Plan is everything needed to run one platform end to end.
type Plan struct {
	Platform   domain.Platform
	ActorID    string
	Units      []Unit
	Pipeline   *Pipeline
	FileName   string
	UnitPause  time.Duration
	BatchPause time.Duration
}

// PlanConfig carries the tuning knobs shared by the plan builders.
type PlanConfig struct {
	MaxResultsPerKeyword int
	MaxPostsPerPage      int
	KeywordLimit         int
	CutoffYear           int
	KeywordFilterSearch  bool
	PostsBatchSize       int
	PagesBatchSize       int
	UnitPause            time.Duration
	BatchPause           time.Duration
	// FileSuffix is appended to export file names, e.g. "_control".
	FileSuffix string
}

// SearchPlatforms are the keyword-driven platforms, in run order.
var SearchPlatforms = []domain.Platform{
	domain.PlatformInstagram,
	domain.PlatformTikTok,
	domain.PlatformTwitter,
}

func exportFileName(p domain.Platform, suffix string) string {
	return fmt.Sprintf("%s_data%s.csv", p, suffix)
}

func hashtag(search string) string {
	return strings.ReplaceAll(search, "#", "")
}

func searchInput(p domain.Platform, kw domain.Keyword, cfg PlanConfig) (string, map[string]any, error) {
	switch p {
	case domain.PlatformInstagram:
		return ActorInstagram, map[string]any{
			"directUrls":   []string{fmt.Sprintf("https://www.instagram.com/explore/tags/%s/", hashtag(kw.Search))},
			"resultsType":  "posts",
			"resultsLimit": cfg.MaxResultsPerKeyword,
		}, nil
	case domain.PlatformTikTok:
		return ActorTikTok, map[string]any{
			"hashtags":                []string{hashtag(kw.Search)},
			"resultsPerPage":          cfg.MaxResultsPerKeyword,
			"shouldDownloadVideos":    false,
			"shouldDownloadCovers":    false,
			"shouldDownloadSubtitles": false,
		}, nil
	case domain.PlatformTwitter:
		return ActorTwitter, map[string]any{
			"searchTerms": []string{kw.Search},
			"maxItems":    max(minTwitterItems, cfg.MaxResultsPerKeyword),
			"addUserInfo": true,
			"sort":        "Latest",
		}, nil
	}
	return "", nil, fmt.Errorf("%s is not a search platform", p)
}

// SearchPlan builds one unit per keyword, limited to cfg.KeywordLimit keywords.
func SearchPlan(p domain.Platform, keywords domain.KeywordSet, cfg PlanConfig) (Plan, error) {
	schema, err := domain.SchemaFor(p)
	if err != nil {
		return Plan{}, err
	}
	plan := Plan{
		Platform: p,
		Pipeline: NewPipeline(schema, keywords,
			WithKeywordFilter(cfg.KeywordFilterSearch),
			WithCutoffYear(cfg.CutoffYear),
		),
		FileName:  exportFileName(p, cfg.FileSuffix),
		UnitPause: cfg.UnitPause,
	}
	for _, kw := range keywords.Limit(cfg.KeywordLimit).Entries() {
		actorID, input, err := searchInput(p, kw, cfg)
		if err != nil {
			return Plan{}, err
		}
		plan.ActorID = actorID
		plan.Units = append(plan.Units, Unit{
			Name:    kw.Search,
			Input:   input,
			Context: domain.UnitContext{Keyword: kw.Label},
		})
	}
	return plan, nil
}

// FacebookPostsPlan builds one unit per page, grouped in batches.
func FacebookPostsPlan(pages []domain.Page, keywords domain.KeywordSet, cfg PlanConfig) (Plan, error) {
	schema, err := domain.SchemaFor(domain.PlatformFacebookPosts)
	if err != nil {
		return Plan{}, err
	}
	plan := Plan{
		Platform:   domain.PlatformFacebookPosts,
		ActorID:    ActorFacebookPosts,
		Pipeline:   NewPipeline(schema, keywords, WithCutoffYear(cfg.CutoffYear)),
		FileName:   exportFileName(domain.PlatformFacebookPosts, cfg.FileSuffix),
		UnitPause:  cfg.UnitPause,
		BatchPause: cfg.BatchPause,
	}
	batchSize := max(cfg.PostsBatchSize, 1)
	for i, page := range pages {
		plan.Units = append(plan.Units, Unit{
			Name: page.Name,
			Input: map[string]any{
				"startUrls":    []map[string]string{{"url": page.URL}},
				"maxPosts":     cfg.MaxPostsPerPage,
				"resultsLimit": cfg.MaxPostsPerPage,
			},
			Context: domain.UnitContext{Organization: page.Name},
			Batch:   i / batchSize,
		})
	}
	return plan, nil
}

// FacebookPagesPlan builds one unit per batch of pages.
func FacebookPagesPlan(pages []domain.Page, cfg PlanConfig) (Plan, error) {
	schema, err := domain.SchemaFor(domain.PlatformFacebookPages)
	if err != nil {
		return Plan{}, err
	}
	plan := Plan{
		Platform:  domain.PlatformFacebookPages,
		ActorID:   ActorFacebookPages,
		Pipeline:  NewPipeline(schema, domain.KeywordSet{}, WithCutoffYear(cfg.CutoffYear)),
		FileName:  exportFileName(domain.PlatformFacebookPages, cfg.FileSuffix),
		UnitPause: cfg.BatchPause,
	}
	batchSize := max(cfg.PagesBatchSize, 1)
	for start := 0; start < len(pages); start += batchSize {
		end := min(start+batchSize, len(pages))
		batch := pages[start:end]
		startURLs := make([]map[string]string, len(batch))
		for i, page := range batch {
			startURLs[i] = map[string]string{"url": page.URL}
		}
		plan.Units = append(plan.Units, Unit{
			Name: fmt.Sprintf("batch %d", start/batchSize+1),
			Input: map[string]any{
				"startUrls":        startURLs,
				"maxPagesPerQuery": len(batch),
			},
			Context: domain.UnitContext{Pages: batch},
		})
	}
	return plan, nil
}
