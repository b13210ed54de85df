package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Matches(t *testing.T) {
	tests := []struct {
		title      string
		weeklyAWS  bool
		generative bool
	}{
		{title: "週刊AWS – 2024/04/01週", weeklyAWS: true},
		{title: "週刊生成AI with AWS – 2024/03/25週", generative: true},
		{title: "週刊AWS と 週刊生成AI の振り返り", generative: true},
		{title: "Amazon Bedrock の新機能"},
		{title: ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.weeklyAWS, WeeklyAWS.Matches(tt.title))
			assert.Equal(t, tt.generative, WeeklyGenerativeAI.Matches(tt.title))
		})
	}
}

func TestCategory_Disjoint(t *testing.T) {
	titles := []string{
		"週刊生成AI with AWS – 2024/03/25週",
		"週刊生成AI",
		"【週刊AWS】週刊生成AI with AWS",
	}
	for _, title := range titles {
		assert.False(t, WeeklyAWS.Matches(title), "週刊AWS must not match %q", title)
		assert.True(t, WeeklyGenerativeAI.Matches(title))
	}
}
