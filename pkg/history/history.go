// Package history indexes publication dates by year and month.
package history

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dcruzf/blog-data/pkg/article"
)

// ErrInvalid indicates a malformed Entry.
var ErrInvalid = errors.New("invalid history entry")

// Entry lists the months of one year that have dated articles.
type Entry struct {
	Year   int   `json:"year"`
	Months []int `json:"months"`
}

// Validate checks that months are in 1..12, sorted and unique.
func (e Entry) Validate() error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.Year, validation.Required, validation.Min(1)),
		validation.Field(&e.Months,
			validation.Required,
			validation.By(func(value any) error {
				months, _ := value.([]int)
				for _, m := range months {
					if m < 1 || m > 12 {
						return validation.NewError("history.months.range", "must be between 1 and 12")
					}
				}
				if !sort.IntsAreSorted(months) {
					return validation.NewError("history.months.order", "must be sorted")
				}
				for i := 1; i < len(months); i++ {
					if months[i] == months[i-1] {
						return validation.NewError("history.months.unique", "must not repeat")
					}
				}
				return nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("%w %d: %w", ErrInvalid, e.Year, err)
	}
	return nil
}

// Aggregate groups the dated articles by year and collects the distinct
// months of each year. Undated articles are skipped. Entries are sorted by
// year and months ascending.
func Aggregate(articles []*article.Article) []Entry {
	byYear := make(map[int]map[int]struct{})
	for _, a := range articles {
		if a == nil || a.Date == nil {
			continue
		}
		year, month := a.Date.Year(), int(a.Date.Month())
		months, ok := byYear[year]
		if !ok {
			months = make(map[int]struct{})
			byYear[year] = months
		}
		months[month] = struct{}{}
	}

	entries := make([]Entry, 0, len(byYear))
	for year, set := range byYear {
		months := make([]int, 0, len(set))
		for m := range set {
			months = append(months, m)
		}
		sort.Ints(months)
		entries = append(entries, Entry{Year: year, Months: months})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Year < entries[j].Year })
	return entries
}
