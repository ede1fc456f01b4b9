package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dcruzf/blog-data/pkg/article"
	"github.com/dcruzf/blog-data/pkg/history"
)

func dated(year int, month time.Month, day int) *article.Article {
	return &article.Article{Date: &article.Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	got := history.Aggregate([]*article.Article{
		dated(2024, time.January, 3),
		dated(2023, time.March, 10),
		{ID: "about"},
		dated(2023, time.January, 1),
		dated(2023, time.March, 20),
		nil,
	})

	assert.Equal(t, []history.Entry{
		{Year: 2023, Months: []int{1, 3}},
		{Year: 2024, Months: []int{1}},
	}, got)
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, history.Aggregate(nil))
	assert.Empty(t, history.Aggregate([]*article.Article{{ID: "undated"}}))
}

func TestEntry_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, history.Entry{Year: 2023, Months: []int{1, 12}}.Validate())

	for name, e := range map[string]history.Entry{
		"no months":    {Year: 2023},
		"month zero":   {Year: 2023, Months: []int{0}},
		"month 13":     {Year: 2023, Months: []int{13}},
		"unsorted":     {Year: 2023, Months: []int{3, 1}},
		"repeated":     {Year: 2023, Months: []int{1, 1}},
		"missing year": {Months: []int{1}},
	} {
		assert.ErrorIs(t, e.Validate(), history.ErrInvalid, name)
	}
}
