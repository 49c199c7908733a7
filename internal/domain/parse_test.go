package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecords(t *testing.T) {
	t.Run("tidy CSV", func(t *testing.T) {
		in := "year,season,count\n2020,Summer,10\n2020,Winter,25\n2021,Summer,5\n"
		records, err := ParseRecords(strings.NewReader(in))

		require.NoError(t, err)
		assert.Equal(t, []Record{
			{Year: "2020", Season: "Summer", Count: 10},
			{Year: "2020", Season: "Winter", Count: 25},
			{Year: "2021", Season: "Summer", Count: 5},
		}, records)
	})

	t.Run("columns in any order with padding", func(t *testing.T) {
		in := "Count, Season , YEAR\n 7 , Spring, 1999\n"
		records, err := ParseRecords(strings.NewReader(in))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, Record{Year: "1999", Season: "Spring", Count: 7}, records[0])
	})

	t.Run("byte order mark and blank lines", func(t *testing.T) {
		in := "\ufeffyear,season,count\n\n2001,Fall,3\n\n"
		records, err := ParseRecords(strings.NewReader(in))

		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("integral float count", func(t *testing.T) {
		records, err := ParseRecords(strings.NewReader("year,season,count\n2001,Fall,12.0\n"))

		require.NoError(t, err)
		assert.Equal(t, 12, records[0].Count)
	})

	t.Run("header only", func(t *testing.T) {
		records, err := ParseRecords(strings.NewReader("year,season,count\n"))

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestParseRecords_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty input", in: "", want: "empty input"},
		{name: "missing count column", in: "year,season\n2020,Summer\n", want: `missing "count" column`},
		{name: "non-numeric count", in: "year,season,count\n2020,Summer,lots\n", want: `invalid count "lots"`},
		{name: "negative count", in: "year,season,count\n2020,Summer,-4\n", want: "negative count"},
		{name: "fractional count", in: "year,season,count\n2020,Summer,1.5\n", want: "invalid count"},
		{name: "empty count", in: "year,season,count\n2020,Summer,\n", want: "empty count"},
		{name: "ragged row", in: "year,season,count\n2020,Summer\n", want: "wrong number of fields"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRecords(strings.NewReader(tc.in))

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseRecords_ReportsLine(t *testing.T) {
	in := "year,season,count\n2020,Summer,1\n2020,Winter,x\n"
	_, err := ParseRecords(strings.NewReader(in))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}
