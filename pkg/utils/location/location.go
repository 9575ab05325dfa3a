package location

import (
	_ "embed"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

//go:embed locations.json
var raw []byte

type Emirate struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"` // DU, AZ
}

type Community struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	EmirateCode string `json:"emirateCode"`
}

// Suggestion is one entry of the hero location autocomplete.
type Suggestion struct {
	Label   string `json:"label"`
	Emirate string `json:"emirate"`
}

var (
	emirates    []Emirate
	communities []Community
	once        sync.Once
	loadErr     error
)

// Init loads the embedded location data.
func Init() error {
	once.Do(func() {
		var data struct {
			Emirates    []Emirate   `json:"emirates"`
			Communities []Community `json:"communities"`
		}
		if loadErr = json.Unmarshal(raw, &data); loadErr != nil {
			return
		}
		emirates = data.Emirates
		communities = data.Communities
	})
	return loadErr
}

func GetEmirates() []Emirate {
	return emirates
}

// GetCommunitiesByEmirate returns the communities of one emirate.
func GetCommunitiesByEmirate(code string) []Community {
	var out []Community
	for _, c := range communities {
		if strings.EqualFold(c.EmirateCode, code) {
			out = append(out, c)
		}
	}
	return out
}

func emirateName(code string) string {
	for _, e := range emirates {
		if e.Code == code {
			return e.Name
		}
	}
	return ""
}

// Suggest matches q against emirate and community names, case-insensitively.
// Prefix matches rank ahead of substring matches; ties keep alphabetical order.
func Suggest(q string, limit int) []Suggestion {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" || limit <= 0 {
		return []Suggestion{}
	}

	type hit struct {
		s      Suggestion
		prefix bool
	}
	var hits []hit
	match := func(name, emirate string) {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, q) {
			return
		}
		hits = append(hits, hit{
			s:      Suggestion{Label: name, Emirate: emirate},
			prefix: strings.HasPrefix(lower, q),
		})
	}
	for _, e := range emirates {
		match(e.Name, e.Name)
	}
	for _, c := range communities {
		match(c.Name, emirateName(c.EmirateCode))
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].prefix != hits[j].prefix {
			return hits[i].prefix
		}
		return hits[i].s.Label < hits[j].s.Label
	})

	out := make([]Suggestion, 0, limit)
	for _, h := range hits {
		if len(out) == limit {
			break
		}
		out = append(out, h.s)
	}
	return out
}
