package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagsRoundTrip(t *testing.T) {
	tags := []string{"sql", "migration", "sql", "review"}
	prompt := Prompt{Tags: TagsJSON(tags)}

	assert.Equal(t, tags, prompt.TagList(), "order and duplicates preserved")
}

func TestTagsEmptyAndNil(t *testing.T) {
	assert.Equal(t, []string{}, (&Prompt{}).TagList())
	assert.Equal(t, []string{}, (&Prompt{Tags: TagsJSON(nil)}).TagList())
	assert.Equal(t, `[]`, string(TagsJSON(nil)))
}

func TestTagsMalformedColumn(t *testing.T) {
	prompt := Prompt{Tags: []byte(`{"not":"an array"}`)}
	assert.Equal(t, []string{}, prompt.TagList())
}
