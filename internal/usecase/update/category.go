package update

import "strings"

// Title keywords of the two weekly series on the AWS Japan blog.
const (
	weeklyAWSKeyword    = "週刊AWS"
	generativeAIKeyword = "週刊生成AI"
)

// Category selects feed entries by title substring.
// Exclude, when set, vetoes titles that would otherwise match Include.
type Category struct {
	Name    string
	Include string
	Exclude string
}

// Matches reports whether title belongs to the category.
func (c Category) Matches(title string) bool {
	if !strings.Contains(title, c.Include) {
		return false
	}
	if c.Exclude != "" && strings.Contains(title, c.Exclude) {
		return false
	}
	return true
}

var (
	// WeeklyAWS matches 週刊AWS posts. A title naming both series belongs to
	// 週刊生成AI with AWS only, so the two categories never overlap.
	WeeklyAWS = Category{
		Name:    "週刊AWS",
		Include: weeklyAWSKeyword,
		Exclude: generativeAIKeyword,
	}

	// WeeklyGenerativeAI matches 週刊生成AI with AWS posts.
	WeeklyGenerativeAI = Category{
		Name:    "週刊生成AI with AWS",
		Include: generativeAIKeyword,
	}
)
