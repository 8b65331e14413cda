package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"social-scraper/workers/scraper/domain"
)

// KeywordsFile is the layout of KEYWORDS_FILE.
type KeywordsFile struct {
	Main    []domain.Keyword `yaml:"main"`
	Control []domain.Keyword `yaml:"control"`
}

// PagesFile is the layout of PAGES_FILE.
type PagesFile struct {
	Pages []domain.Page `yaml:"pages"`
}

// LoadKeywords returns the keyword groups from path, falling back to the
// built-in lists for an empty path or an empty group.
func LoadKeywords(path string) (KeywordsFile, error) {
	out := KeywordsFile{Main: domain.DefaultKeywords, Control: domain.DefaultControlKeywords}
	if path == "" {
		return out, nil
	}
	var file KeywordsFile
	if err := readYAML(path, &file); err != nil {
		return out, err
	}
	if len(file.Main) > 0 {
		out.Main = file.Main
	}
	if len(file.Control) > 0 {
		out.Control = file.Control
	}
	return out, nil
}

// LoadPages returns the page list from path, or the built-in list.
func LoadPages(path string) ([]domain.Page, error) {
	if path == "" {
		return domain.DefaultPages, nil
	}
	var file PagesFile
	if err := readYAML(path, &file); err != nil {
		return nil, err
	}
	pages := make([]domain.Page, 0, len(file.Pages))
	for _, p := range file.Pages {
		if p.URL == "" {
			return nil, fmt.Errorf("page %q in %s has no url", p.Name, path)
		}
		pages = append(pages, p)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages defined in %s", path)
	}
	return pages, nil
}

func readYAML(path string, into interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
