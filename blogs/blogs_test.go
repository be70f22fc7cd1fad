package blogs_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-blog-server/blogs"
	"github.com/stretchr/testify/assert"
)

func TestMakeExcerpt(t *testing.T) {
	short := "just a few words"
	assert.Equal(t, short, blogs.MakeExcerpt(short), "short bodies are kept whole without an ellipsis")

	words := make([]string, 50)
	for i := range words {
		words[i] = "word"
	}
	excerpt := blogs.MakeExcerpt(strings.Join(words, " "))
	assert.True(t, strings.HasSuffix(excerpt, "..."))
	assert.Len(t, strings.Fields(excerpt), blogs.ExcerptWords)

	exactly := strings.Join(words[:blogs.ExcerptWords], " ")
	assert.Equal(t, exactly, blogs.MakeExcerpt(exactly), "a body of exactly the excerpt length is kept whole")
}

func TestMakeExcerptCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "one two three", blogs.MakeExcerpt("one\n two\t three"))
}

func TestValidateTitle(t *testing.T) {
	assert.Error(t, blogs.ValidateTitle("ab"))
	assert.NoError(t, blogs.ValidateTitle("My first post"))
	assert.Error(t, blogs.ValidateTitle(strings.Repeat("x", blogs.TitleMaxLength+1)))
}

func TestValidateBody(t *testing.T) {
	assert.Error(t, blogs.ValidateBody("too short"))
	assert.NoError(t, blogs.ValidateBody(strings.Repeat("x", blogs.BodyMinLength)))
}
