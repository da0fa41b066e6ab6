package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResponder(t *testing.T, pick int) *KeywordResponder {
	t.Helper()
	r, err := NewDefaultKeywordResponder(WithRandom(func(n int) int { return pick % n }))
	require.NoError(t, err)
	return r
}

func TestKeywordResponder_RuleTable(t *testing.T) {
	r := newTestResponder(t, 0)

	tests := []struct {
		name    string
		message string
		rule    int
	}{
		{"greeting in chinese", "你好，我是測試用戶", 0},
		{"greeting is case insensitive", "HeLLo there", 0},
		{"help", "I need help", 1},
		{"waste material in chinese", "我有廢料", 2},
		{"product", "tell me about this product", 2},
		{"order", "where is my ORDER", 3},
		{"price", "價格多少", 4},
		{"seller", "find a seller", 5},
		{"buyer", "買家在哪", 6},
		{"recycle", "can you recycle glass", 7},
		{"waste only reaches the last rule", "waste paper", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := r.Reply(tt.message)
			assert.True(t, reply.Matched())
			assert.Equal(t, tt.rule, reply.Rule)
			assert.Equal(t, DefaultResponderRules[tt.rule].Reply, reply.Text)
		})
	}
}

func TestKeywordResponder_EarliestRuleWins(t *testing.T) {
	r := newTestResponder(t, 0)

	// "order" appears before "hello" in the text but the greeting rule is first.
	reply := r.Reply("order status, hello")
	assert.Equal(t, 0, reply.Rule)

	// 廢料 belongs to the product rule even when waste is also present.
	reply = r.Reply("waste 廢料")
	assert.Equal(t, 2, reply.Rule)
}

func TestKeywordResponder_Fallback(t *testing.T) {
	for pick := range DefaultFallbackReplies {
		r := newTestResponder(t, pick)
		reply := r.Reply("今天天氣不錯")
		assert.False(t, reply.Matched())
		assert.Equal(t, DefaultFallbackReplies[pick], reply.Text)
	}
}

func TestKeywordResponder_EmptyMessageFallsBack(t *testing.T) {
	r := newTestResponder(t, 3)
	reply := r.Reply("")
	assert.Equal(t, -1, reply.Rule)
	assert.Equal(t, DefaultFallbackReplies[3], reply.Text)
	assert.Empty(t, reply.Language)
}

func TestNewKeywordResponder_RequiresFallback(t *testing.T) {
	_, err := NewKeywordResponder(DefaultResponderRules, nil)
	assert.Error(t, err)
}

func TestKeywordResponder_CustomRules(t *testing.T) {
	r, err := NewKeywordResponder(
		[]ResponderRule{{Triggers: []string{"Metal"}, Reply: "metal"}},
		[]string{"fallback"},
	)
	require.NoError(t, err)

	assert.Equal(t, "metal", r.Reply("scrap METAL for sale").Text)
	assert.Equal(t, "fallback", r.Reply("plastic").Text)
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "", DetectLanguage("   "))
	assert.Equal(t, "en", DetectLanguage("I would like to sell a large amount of scrap copper wire today"))
}
