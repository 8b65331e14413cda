package domain

import "strings"

// Keyword pairs a human-readable label with the raw search string sent to
// actors and its normalized matching term.
type Keyword struct {
	Label  string `yaml:"label"`
	Search string `yaml:"search"`
	Term   string `yaml:"-"`
}

// KeywordSet is an ordered, label-unique list of keywords. The zero value is empty.
type KeywordSet struct {
	entries []Keyword
}

// NormalizeTerm lowercases s and strips leading hashtag markers.
func NormalizeTerm(s string) string {
	return strings.ToLower(strings.TrimLeft(strings.TrimSpace(s), "#"))
}

// NewKeywordSet keeps definition order. Duplicate labels keep the first
// definition and keywords whose term normalizes to "" are dropped, since an
// empty term would match every text.
func NewKeywordSet(keywords []Keyword) KeywordSet {
	seen := make(map[string]bool, len(keywords))
	entries := make([]Keyword, 0, len(keywords))
	for _, kw := range keywords {
		label := strings.TrimSpace(kw.Label)
		if label == "" || seen[label] {
			continue
		}
		search := strings.TrimSpace(kw.Search)
		if search == "" {
			search = label
		}
		term := NormalizeTerm(search)
		if term == "" {
			continue
		}
		seen[label] = true
		entries = append(entries, Keyword{Label: label, Search: search, Term: term})
	}
	return KeywordSet{entries: entries}
}

// Entries returns a copy of the keywords in definition order.
func (k KeywordSet) Entries() []Keyword {
	out := make([]Keyword, len(k.entries))
	copy(out, k.entries)
	return out
}

func (k KeywordSet) Len() int { return len(k.entries) }

// Limit returns the first n keywords; n <= 0 keeps all of them.
func (k KeywordSet) Limit(n int) KeywordSet {
	if n <= 0 || n >= len(k.entries) {
		return k
	}
	return KeywordSet{entries: k.entries[:n]}
}

// DefaultKeywords is the main keyword group.
var DefaultKeywords = []Keyword{
	{Label: "aborto", Search: "#aborto"},
	{Label: "aborto legal", Search: "#abortolegal"},
	{Label: "aborto seguro", Search: "#abortoseguro"},
	{Label: "aborto libre", Search: "#abortolibre"},
	{Label: "marea verde", Search: "#mareaverde"},
	{Label: "pañuelo verde", Search: "#pañueloverde"},
	{Label: "derecho a decidir", Search: "#derechoadecidir"},
	{Label: "mi cuerpo mi decisión", Search: "#micuerpomidecision"},
	{Label: "interrupción legal del embarazo", Search: "#interrupcionlegaldelembarazo"},
	{Label: "salud reproductiva", Search: "#saludreproductiva"},
	{Label: "derechos reproductivos", Search: "#derechosreproductivos"},
	{Label: "misoprostol", Search: "#misoprostol"},
	{Label: "acompañantes", Search: "#acompañantes"},
	{Label: "ni una menos", Search: "#niunamenos"},
	{Label: "feminismo", Search: "#feminismo"},
}

// DefaultControlKeywords is the control group used to baseline engagement.
var DefaultControlKeywords = []Keyword{
	{Label: "recetas", Search: "#recetas"},
	{Label: "futbol", Search: "#futbol"},
	{Label: "viajes", Search: "#viajes"},
	{Label: "mascotas", Search: "#mascotas"},
	{Label: "tecnologia", Search: "#tecnologia"},
	{Label: "musica", Search: "#musica"},
	{Label: "cine", Search: "#cine"},
	{Label: "moda", Search: "#moda"},
	{Label: "fitness", Search: "#fitness"},
	{Label: "gastronomia", Search: "#gastronomia"},
}
