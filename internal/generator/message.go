package generator

import (
	"strings"

	"github.com/arcanaland/greetcard/internal/card"
)

var (
	emojiPrefixes = []string{"💝 ", "✨ ", "🌟 ", "💫 ", "🎉 ", "🌈 "}
	closings      = []string{"祝福满满！", "心想事成！", "万事如意！", "好运连连！", "幸福安康！"}
)

const (
	warmthPrefix = "愿这份祝福带给你温暖与欢乐，"
	exclamation  = "！"
	// attributionChance is the probability that a sender's name is woven into the message
	attributionChance = 0.3
)

// transform rewrites a template; one is chosen per message
type transform func(g *Generator, msg string) string

var transforms = []transform{
	func(_ *Generator, msg string) string { return msg },
	func(g *Generator, msg string) string { return pick(g, emojiPrefixes) + msg },
	func(g *Generator, msg string) string { return msg + pick(g, closings) },
	func(_ *Generator, msg string) string { return strings.ReplaceAll(msg, exclamation, "！！") },
	func(_ *Generator, msg string) string {
		if strings.HasPrefix(msg, "愿") {
			return msg
		}
		return warmthPrefix + msg
	},
}

// greetings are the recipient prefix forms
var greetings = []func(name string) string{
	func(name string) string { return "亲爱的" + name + "：" },
	func(name string) string { return name + "，" },
	func(name string) string { return "致" + name + "——" },
	func(name string) string { return "嘿，" + name + "！" },
}

// GenerateStyledMessage picks a template and dresses it up: one random
// transform, a greeting when recipient is set and, on roughly three calls in
// ten, an attribution to sender. Repeated calls are expected to differ.
func (g *Generator) GenerateStyledMessage(t card.Type, recipient, sender string) (string, error) {
	template, err := g.GenerateMessage(t)
	if err != nil {
		return "", err
	}

	msg := transforms[g.rng.IntN(len(transforms))](g, template)

	if recipient != "" {
		msg = greetings[g.rng.IntN(len(greetings))](recipient) + msg
	}

	if sender != "" && g.rng.Float64() > 1-attributionChance {
		msg = strings.ReplaceAll(msg, exclamation, "——来自"+sender+"的祝福！")
	}

	return msg, nil
}

func pick(g *Generator, options []string) string {
	return options[g.rng.IntN(len(options))]
}
