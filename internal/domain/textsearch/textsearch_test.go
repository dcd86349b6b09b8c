package textsearch

import (
	"testing"

	"gallery-api/internal/testutil/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID    uint
	Title string
	Body  string
}

func TestPattern(t *testing.T) {
	assert.Equal(t, `%100\%%`, Pattern(" 100% "))
	assert.Equal(t, `%a\_b%`, Pattern("A_B"))
	assert.Equal(t, `%c:\\tmp%`, Pattern(`C:\tmp`))
}

func TestWhereMatchesLiterally(t *testing.T) {
	db := testdb.Open(t, &note{})
	require.NoError(t, db.Create(&[]note{
		{Title: "Sold 100% of prints"},
		{Title: "100 sketches"},
		{Title: "draft", Body: "file_name"},
		{Title: "filename"},
	}).Error)

	find := func(term string) []string {
		var titles []string
		require.NoError(t, Where(db.Model(&note{}), term, "title", "body").Order("id").Pluck("title", &titles).Error)
		return titles
	}
	assert.Equal(t, []string{"Sold 100% of prints"}, find("100%"))
	assert.Equal(t, []string{"draft"}, find("file_"))
	assert.Equal(t, []string{"Sold 100% of prints", "100 sketches"}, find("100"))
}
