package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1965-08-01", want: "1965-08-01"},
		{in: "2024-02-29", want: "2024-02-29"},
		{in: "13/01/2024", wantErr: true},
		{in: "2024-1-05", wantErr: true},
		{in: "2023-02-29", wantErr: true},
		{in: "2024-01-05T10:00:00Z", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(DateLayout))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestBook_Replace(t *testing.T) {
	isbn := "111"
	b := NewBook("Old", "Someone", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), &isbn)
	created := b.CreatedAt

	b.Replace("New", "Other", time.Date(2010, 5, 6, 12, 0, 0, 0, time.UTC), nil)

	assert.Equal(t, "New", b.Title)
	assert.Equal(t, "Other", b.Author)
	assert.Equal(t, "2010-05-06", b.PublicationDateString())
	assert.Nil(t, b.ISBN)
	assert.Equal(t, created, b.CreatedAt)
	assert.False(t, b.UpdatedAt.Before(created))
}
