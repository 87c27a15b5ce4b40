package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"User", "user"},
		{"BlogPost", "blog_post"},
		{"UserID", "user_id"},
		{"HTTPServer", "http_server"},
		{"already_snake", "already_snake"},
		{"Mixed_Snake", "mixed_snake"},
		{"a1B", "a1_b"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SnakeCase(tt.input), "input %q", tt.input)
	}
}

func TestTableName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", "users"},
		{"BlogPost", "blog_posts"},
		{"Person", "people"},
		{"Status", "statuses"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TableName(tt.input), "input %q", tt.input)
	}
}
