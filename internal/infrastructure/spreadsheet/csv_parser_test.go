package spreadsheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_Parse(t *testing.T) {
	t.Run("Valid UTF-8 CSV", func(t *testing.T) {
		rows, err := NewCSVParser().Parse(strings.NewReader("a,b,c\n1,2,3\n"))

		require.NoError(t, err)
		assert.Equal(t, [][]string{{"a", "b", "c"}, {"1", "2", "3"}}, rows)
	})

	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		rows, err := NewCSVParser().Parse(strings.NewReader("\xEF\xBB\xBFname,hours\nAlice,8"))

		require.NoError(t, err)
		assert.Equal(t, "name", rows[0][0])
	})

	t.Run("Empty file returns error", func(t *testing.T) {
		_, err := NewCSVParser().Parse(strings.NewReader(""))

		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("Invalid UTF-8 returns error", func(t *testing.T) {
		_, err := NewCSVParser().Parse(strings.NewReader("name\n\xff\xfe\xfd"))

		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("Custom delimiter", func(t *testing.T) {
		rows, err := NewCSVParser(WithDelimiter(';')).Parse(strings.NewReader("a;b\n1;2"))

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, rows[0])
	})

	t.Run("Variable field counts", func(t *testing.T) {
		rows, err := NewCSVParser().Parse(strings.NewReader("a,b,c,d\nx,y\n"))

		require.NoError(t, err)
		assert.Len(t, rows[1], 2)
	})

	t.Run("Trims cells", func(t *testing.T) {
		rows, err := NewCSVParser().Parse(strings.NewReader("  John Doe ,Apollo  \n"))

		require.NoError(t, err)
		assert.Equal(t, []string{"John Doe", "Apollo"}, rows[0])
	})

	t.Run("Keeps spaces when trimming disabled", func(t *testing.T) {
		rows, err := NewCSVParser(WithTrimSpace(false)).Parse(strings.NewReader("a , b\n"))

		require.NoError(t, err)
		assert.Equal(t, []string{"a ", " b"}, rows[0])
	})

	t.Run("Multi-byte rune at the peek boundary", func(t *testing.T) {
		content := strings.Repeat("a", 4095) + "é\n"
		rows, err := NewCSVParser().Parse(strings.NewReader(content))

		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}
