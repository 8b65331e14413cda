package services

import (
	"fmt"
	"sort"
	"strings"

	"social-scraper/workers/scraper/domain"
)

const (
	topOrganizations = 5
	topKeywords      = 10
)

// Count is one entry of a ranked frequency list.
type Count struct {
	Name  string
	Total int
}

// Summary holds the descriptive statistics reported after an export.
type Summary struct {
	Platform domain.Platform
	Records  int

	TopOrganizations []Count
	TopKeywords      []Count
	TotalLikes       int64
	TotalComments    int64
	TotalShares      int64
	MeanLikes        float64

	WithEmail      int
	WithPhone      int
	WithWebsite    int
	AdsRunning     int
	TotalFollowers int64
}

// Summarize computes the statistics that apply to the table's columns.
func Summarize(table domain.ResultTable) Summary {
	s := Summary{Platform: table.Platform, Records: table.Len()}
	has := make(map[string]bool, len(table.Columns))
	for _, c := range table.Columns {
		has[c] = true
	}

	orgs := map[string]int{}
	keywords := map[string]int{}
	for _, rec := range table.Records {
		s.TotalLikes += rec.Int("likes")
		s.TotalComments += rec.Int("comments")
		s.TotalShares += rec.Int("shares")
		s.TotalFollowers += rec.Int("followers")

		if org := rec.String("organization_name"); org != "" {
			orgs[org]++
		}
		for _, kw := range recordKeywords(rec) {
			keywords[kw]++
		}

		if rec.String("email") != "" {
			s.WithEmail++
		}
		if rec.String("telefono") != "" {
			s.WithPhone++
		}
		if rec.String("website") != "" {
			s.WithWebsite++
		}
		if rec.String("ad_status") == domain.FlagYes {
			s.AdsRunning++
		}
	}
	if has["likes"] && s.Records > 0 {
		s.MeanLikes = float64(s.TotalLikes) / float64(s.Records)
	}
	s.TopOrganizations = topN(orgs, topOrganizations)
	s.TopKeywords = topN(keywords, topKeywords)
	return s
}

func recordKeywords(rec domain.CanonicalRecord) []string {
	if matched := rec.String("keywords_matched"); matched != "" {
		return strings.Split(matched, domain.ListSeparator)
	}
	if kw := rec.String("keyword"); kw != "" {
		return []string{kw}
	}
	return nil
}

func topN(counts map[string]int, n int) []Count {
	out := make([]Count, 0, len(counts))
	for name, total := range counts {
		out = append(out, Count{Name: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Lines renders the summary as status lines for the run log.
func (s Summary) Lines() []string {
	lines := []string{fmt.Sprintf("%s: %d records", s.Platform, s.Records)}
	if s.Records == 0 {
		return lines
	}
	if s.Platform == domain.PlatformFacebookPages {
		return append(lines,
			fmt.Sprintf("pages with email: %d", s.WithEmail),
			fmt.Sprintf("pages with phone: %d", s.WithPhone),
			fmt.Sprintf("pages with website: %d", s.WithWebsite),
			fmt.Sprintf("pages running ads: %d", s.AdsRunning),
			fmt.Sprintf("total likes: %d", s.TotalLikes),
			fmt.Sprintf("total followers: %d", s.TotalFollowers),
		)
	}
	for _, c := range s.TopOrganizations {
		lines = append(lines, fmt.Sprintf("organization %s: %d posts", c.Name, c.Total))
	}
	for _, c := range s.TopKeywords {
		lines = append(lines, fmt.Sprintf("keyword %s: %d posts", c.Name, c.Total))
	}
	return append(lines,
		fmt.Sprintf("total likes: %d", s.TotalLikes),
		fmt.Sprintf("total comments: %d", s.TotalComments),
		fmt.Sprintf("total shares: %d", s.TotalShares),
		fmt.Sprintf("mean likes: %.1f", s.MeanLikes),
	)
}
