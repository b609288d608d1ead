package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{name: "nil", values: nil, want: nil},
		{name: "only blanks", values: []string{"", "  ", "\t"}, want: []string{}},
		{name: "keeps first occurrence order", values: []string{" kafka-2:9092", "kafka-1:9092 ", "kafka-2:9092"}, want: []string{"kafka-2:9092", "kafka-1:9092"}},
		{name: "case sensitive", values: []string{"GAFTL00", "gaftl00"}, want: []string{"GAFTL00", "gaftl00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrim(tt.values))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Empty(t, SplitList("", ","))
	assert.Empty(t, SplitList(" , ,", ","))
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitList("a:9092, b:9092,a:9092", ","))
}
