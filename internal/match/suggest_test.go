package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"algorithm", "altruistic", 6},
		{"Hello", "hello", 1},
		{"customerid", "customerID", 2},
		{"createdat", "updatedat", 3},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a), "distance is symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("OrderID", "order_id"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("CustomerName", "customer_name"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("nam", "name"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("", "uid"), 1e-9)
	assert.Less(t, Similarity("Email", "Password"), 0.5)
}

func TestClosest(t *testing.T) {
	props := []string{"uid", "name", "introduction", "avatar", "sex"}

	tests := []struct {
		name  string
		want  string
		found bool
	}{
		{"nam", "name", true},
		{"introducton", "introduction", true},
		{"Avatar", "avatar", true},
		{"avatar_url", "avatar", true},
		{"token", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.name, props, 0.6)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	got, ok := Closest("name", nil, 0.1)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func BenchmarkDistance(b *testing.B) {
	for b.Loop() {
		Distance("algorithm", "altruistic")
	}
}
