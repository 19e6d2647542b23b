package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"travelex-backend/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog search, filtering and sorting. Pure functions over a destination
// slice: input order is preserved unless a function sorts, and the input
// slice is never mutated.

// CatalogQuery is the full set of user-adjustable browsing knobs. The zero
// value (or "all") of each field is a no-op.
type CatalogQuery struct {
	Search   string
	Region   string
	Budget   string
	Duration string
	Deals    string
	Sort     string
}

var (
	termSplitter = regexp.MustCompile(`[\s,]+`)
	nameSplitter = regexp.MustCompile(`[\s-]+`)

	regionKeywords = map[string][]string{
		"asia": {
			"japan", "china", "thailand", "india", "singapore", "korea",
			"vietnam", "indonesia", "malaysia", "philippines",
		},
		"europe": {
			"france", "italy", "spain", "greece", "germany", "uk",
			"united kingdom", "england", "switzerland", "austria", "norway",
			"sweden", "iceland", "netherlands", "portugal",
		},
		"americas": {
			"usa", "united states", "canada", "mexico", "brazil",
			"argentina", "chile", "peru", "colombia", "costa rica", "ecuador",
		},
		"africa": {
			"south africa", "morocco", "egypt", "kenya", "tanzania",
			"madagascar", "namibia", "botswana", "zimbabwe", "zambia",
		},
	}

	// Keyword expansions keyed on fragments of the destination name.
	nameExpansions = []struct {
		fragment string
		keywords []string
	}{
		{"Island", []string{"island"}},
		{"Beach", []string{"beach", "coastal"}},
		{"Mountain", []string{"mountain", "alpine"}},
		{"City", []string{"city", "urban"}},
		{"Desert", []string{"desert"}},
		{"Forest", []string{"forest", "jungle"}},
	}

	nameCollator = collate.New(language.English)
)

func searchableText(d models.Destination) string {
	parts := []string{d.Name, d.Country, d.Description}
	parts = append(parts, nameSplitter.Split(d.Name, -1)...)
	for _, exp := range nameExpansions {
		if strings.Contains(d.Name, exp.fragment) {
			parts = append(parts, exp.keywords...)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func relevanceScore(d models.Destination, terms []string) int {
	name := strings.ToLower(d.Name)
	country := strings.ToLower(d.Country)
	description := strings.ToLower(d.Description)

	score := 0
	for _, term := range terms {
		if strings.Contains(name, term) {
			score += 10
		}
		if strings.Contains(country, term) {
			score += 8
		}
		if strings.Contains(description, term) {
			score += 2
		}
	}
	return score
}

// SearchDestinations keeps destinations where any query term is a substring
// of the searchable text, ranked by relevance. An empty or whitespace-only
// query returns the input unchanged, original order included.
func SearchDestinations(query string, list []models.Destination) []models.Destination {
	if strings.TrimSpace(query) == "" {
		return list
	}

	rawTerms := termSplitter.Split(strings.ToLower(query), -1)
	terms := rawTerms[:0]
	for _, t := range rawTerms {
		if t != "" {
			terms = append(terms, t)
		}
	}

	filtered := make([]models.Destination, 0, len(list))
	for _, d := range list {
		text := searchableText(d)
		for _, term := range terms {
			if strings.Contains(text, term) {
				filtered = append(filtered, d)
				break
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return relevanceScore(filtered[i], terms) > relevanceScore(filtered[j], terms)
	})
	return filtered
}

func matchesRegion(d models.Destination, region string) bool {
	keywords, ok := regionKeywords[region]
	if !ok {
		return false
	}
	country := strings.ToLower(d.Country)
	for _, kw := range keywords {
		if strings.Contains(country, kw) {
			return true
		}
	}
	return false
}

// matchesBudget follows the original band edges: 1000, 2000 and 3000 are
// inclusive on both adjacent middle bands. An unparseable price matches no
// band.
func matchesBudget(d models.Destination, budget string) bool {
	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil {
		return false
	}
	switch budget {
	case "under-1000":
		return price < 1000
	case "1000-2000":
		return price >= 1000 && price <= 2000
	case "2000-3000":
		return price >= 2000 && price <= 3000
	case "3000-plus":
		return price > 3000
	}
	return true
}

func matchesDuration(d models.Destination, duration string) bool {
	switch duration {
	case "3-5":
		return d.Duration >= 3 && d.Duration <= 5
	case "6-7":
		return d.Duration >= 6 && d.Duration <= 7
	case "8-14":
		return d.Duration >= 8 && d.Duration <= 14
	case "15-plus":
		return d.Duration >= 15
	}
	return true
}

func matchesDeals(d models.Destination, deals string) bool {
	switch deals {
	case "flash-sales":
		return d.FlashSale
	case "seasonal":
		return d.SeasonalTag != ""
	case "group-discounts":
		return d.GroupDiscountMin > 0
	case "current-deals":
		return d.HasActivePromo()
	}
	return true
}

// FilterDestinations applies the region, budget, duration and deals filters
// with logical AND. "all" (or empty) disables a filter.
func FilterDestinations(list []models.Destination, q CatalogQuery) []models.Destination {
	out := make([]models.Destination, 0, len(list))
	for _, d := range list {
		if q.Region != "" && q.Region != "all" && !matchesRegion(d, q.Region) {
			continue
		}
		if q.Budget != "" && q.Budget != "all" && !matchesBudget(d, q.Budget) {
			continue
		}
		if q.Duration != "" && q.Duration != "all" && !matchesDuration(d, q.Duration) {
			continue
		}
		if q.Deals != "" && q.Deals != "all" && !matchesDeals(d, q.Deals) {
			continue
		}
		out = append(out, d)
	}
	return out
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

func priceDigits(price string) int {
	n, err := strconv.Atoi(nonDigits.ReplaceAllString(price, ""))
	if err != nil {
		return 0
	}
	return n
}

func ratingValue(d models.Destination) float64 {
	r, err := strconv.ParseFloat(strings.TrimSpace(d.Rating), 64)
	if err != nil {
		return 0
	}
	return r
}

func popularityScore(d models.Destination) float64 {
	score := ratingValue(d)
	if d.FlashSale {
		score++
	}
	if d.PromoTag != "" {
		score += 0.5
	}
	return score
}

// SortDestinations returns a sorted copy. Recognized keys: name (default,
// locale-aware), price-low, price-high, rating, duration, popularity.
func SortDestinations(list []models.Destination, sortBy string) []models.Destination {
	sorted := make([]models.Destination, len(list))
	copy(sorted, list)

	switch sortBy {
	case "price-low":
		sort.SliceStable(sorted, func(i, j int) bool {
			return priceDigits(sorted[i].Price) < priceDigits(sorted[j].Price)
		})
	case "price-high":
		sort.SliceStable(sorted, func(i, j int) bool {
			return priceDigits(sorted[i].Price) > priceDigits(sorted[j].Price)
		})
	case "rating":
		sort.SliceStable(sorted, func(i, j int) bool {
			return ratingValue(sorted[i]) > ratingValue(sorted[j])
		})
	case "duration":
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Duration < sorted[j].Duration
		})
	case "popularity":
		sort.SliceStable(sorted, func(i, j int) bool {
			return popularityScore(sorted[i]) > popularityScore(sorted[j])
		})
	default: // name
		sort.SliceStable(sorted, func(i, j int) bool {
			return nameCollator.CompareString(sorted[i].Name, sorted[j].Name) < 0
		})
	}
	return sorted
}

// BrowseDestinations runs the full pipeline the storefront uses: search,
// then category filters, then sort.
func BrowseDestinations(list []models.Destination, q CatalogQuery) []models.Destination {
	result := SearchDestinations(q.Search, list)
	result = FilterDestinations(result, q)
	return SortDestinations(result, q.Sort)
}
