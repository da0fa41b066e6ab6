package service

import (
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

// ResponderRule maps any of its triggers to a canned reply.
type ResponderRule struct {
	Triggers []string
	Reply    string
}

// DefaultResponderRules is evaluated in order; the first rule with a trigger
// present in the message wins.
var DefaultResponderRules = []ResponderRule{
	{Triggers: []string{"你好", "hello"}, Reply: "你好！很高興為你服務。有什麼我可以幫助你的嗎？"},
	{Triggers: []string{"幫助", "help"}, Reply: "我很樂意幫助你！請告訴我你遇到的具體問題，我會盡力為你提供解決方案。"},
	{Triggers: []string{"廢料", "product"}, Reply: "關於廢料相關的問題，我可以為你提供詳細的資訊和建議。請告訴我你對哪個廢料感興趣？"},
	{Triggers: []string{"訂單", "order"}, Reply: "我可以幫助你處理訂單相關的問題。請告訴我你的訂單號碼或具體問題，我會為你查詢。"},
	{Triggers: []string{"價格", "price"}, Reply: "關於價格資訊，我可以為你提供最新的報價。請告訴我你感興趣的廢料，我會為你查詢價格。"},
	{Triggers: []string{"賣家", "seller"}, Reply: "我可以幫你找到合適的賣家。請告訴我你需要什麼類型的廢料或服務？"},
	{Triggers: []string{"買家", "buyer"}, Reply: "我可以幫你找到潛在的買家。請告訴我你銷售什麼廢料？"},
	{Triggers: []string{"回收", "recycle"}, Reply: "關於回收服務，我可以為你提供相關資訊。請告訴我你需要回收什麼類型的物品？"},
	// 廢料 is already claimed by the third rule, so only "waste" reaches this one.
	{Triggers: []string{"廢料", "waste"}, Reply: "我可以幫你處理廢料相關的問題。請告訴我你有哪些廢料需要處理？"},
}

var DefaultFallbackReplies = []string{
	"我理解你的問題。讓我來幫助你解決這個問題。",
	"這是一個很好的問題！根據我的分析，我建議你...",
	"謝謝你的提問。讓我為你提供一些有用的建議。",
	"我明白你的需求。這裡有一些解決方案供你參考。",
	"這確實是一個重要的問題。讓我為你詳細解釋一下。",
	"根據你的描述，我建議你可以嘗試以下方法...",
	"我明白你的困擾。讓我為你提供一些實用的建議。",
	"這是一個常見的問題。讓我為你提供解決方案。",
}

const (
	AssistantWelcome = "你好！我是你的AI助手，有什麼可以幫助你的嗎？"
	AssistantFailure = "抱歉，我暫時無法回應。請稍後再試。"
)

type Reply struct {
	Text     string
	Rule     int // index of the matching rule, -1 for a fallback
	Language string
}

func (r Reply) Matched() bool {
	return r.Rule >= 0
}

type KeywordResponder struct {
	rules     []ResponderRule
	fallbacks []string
	matcher   *goahocorasick.Machine
	// lowest rule index owning each trigger
	ruleOf map[string]int
	intn   func(n int) int
}

type ResponderOption func(*KeywordResponder)

// WithRandom replaces the source used to pick fallback replies.
func WithRandom(intn func(n int) int) ResponderOption {
	return func(r *KeywordResponder) {
		r.intn = intn
	}
}

func NewKeywordResponder(rules []ResponderRule, fallbacks []string, opts ...ResponderOption) (*KeywordResponder, error) {
	if len(fallbacks) == 0 {
		return nil, errors.New("responder needs at least one fallback reply")
	}

	r := &KeywordResponder{
		rules:     rules,
		fallbacks: fallbacks,
		ruleOf:    make(map[string]int),
		intn:      rand.IntN,
	}
	for _, opt := range opts {
		opt(r)
	}

	var patterns [][]rune
	for i, rule := range rules {
		for _, trigger := range rule.Triggers {
			trigger = strings.ToLower(trigger)
			if trigger == "" {
				continue
			}
			if _, seen := r.ruleOf[trigger]; seen {
				continue
			}
			r.ruleOf[trigger] = i
			patterns = append(patterns, []rune(trigger))
		}
	}

	if len(patterns) > 0 {
		m := new(goahocorasick.Machine)
		if err := m.Build(patterns); err != nil {
			return nil, err
		}
		r.matcher = m
	}

	return r, nil
}

func NewDefaultKeywordResponder(opts ...ResponderOption) (*KeywordResponder, error) {
	return NewKeywordResponder(DefaultResponderRules, DefaultFallbackReplies, opts...)
}

// Reply answers message with the reply of the earliest matching rule, or a
// random fallback when nothing matches.
func (r *KeywordResponder) Reply(message string) Reply {
	lower := strings.ToLower(message)

	rule := -1
	if r.matcher != nil && lower != "" {
		for _, term := range r.matcher.MultiPatternSearch([]rune(lower), false) {
			idx, ok := r.ruleOf[string(term.Word)]
			if ok && (rule < 0 || idx < rule) {
				rule = idx
			}
		}
	}

	reply := Reply{Rule: rule, Language: DetectLanguage(message)}
	if rule >= 0 {
		reply.Text = r.rules[rule].Reply
	} else {
		reply.Text = r.fallbacks[r.intn(len(r.fallbacks))]
	}
	return reply
}

// DetectLanguage returns the ISO 639-1 code of text, or "" when unknown.
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6391()
}
