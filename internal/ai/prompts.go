package ai

import (
	"fmt"

	"github.com/arcanaland/greetcard/internal/card"
)

// tones describe the mood of each card type for the Gemini prompts
var tones = map[card.Type]string{
	card.Birthday:        "欢快、温馨的生日祝福",
	card.Wedding:         "浪漫、甜蜜的新婚祝福",
	card.Congratulations: "热烈、喜庆的庆祝词",
	card.ThankYou:        "真诚、温暖的感谢语",
	card.NewYear:         "喜庆、吉祥的新年祝福",
	card.Valentine:       "浪漫、深情的情书内容",
	card.Christmas:       "温馨、欢乐的圣诞祝福",
	card.Custom:          "温暖、真诚的祝福",
}

// cardNames are the card kinds named in the GLM prompts
var cardNames = map[card.Type]string{
	card.Birthday:        "生日贺卡",
	card.Wedding:         "新婚贺卡",
	card.Congratulations: "庆祝贺卡",
	card.ThankYou:        "感谢卡",
	card.NewYear:         "新年贺卡",
	card.Valentine:       "情书",
	card.Christmas:       "圣诞贺卡",
	card.Custom:          "祝福贺卡",
}

func toneFor(t card.Type) string {
	if tone, ok := tones[t]; ok {
		return tone
	}
	return tones[card.Custom]
}

func cardNameFor(t card.Type) string {
	if name, ok := cardNames[t]; ok {
		return name
	}
	return "贺卡"
}

const messageInstructions = `要求：
1. 生成一个简短标题（4-8字）
2. 生成2-3条祝福/邀请/感谢语（每条10-20字）
3. 生成一个署名（2-6字）

请以JSON格式返回，格式如下：
{
    "title": "标题",
    "message": ["第一句", "第二句", "第三句"],
    "signature": "署名"
}

只返回JSON，不要其他内容。`

// messagePrompt asks for a titled, signed message about subject
func messagePrompt(subject string) string {
	return fmt.Sprintf("请为一张%s卡片生成内容。\n%s", subject, messageInstructions)
}

// glmMessagePrompt is the GLM variant, which names the kind of card
func glmMessagePrompt(t card.Type) string {
	return fmt.Sprintf("请为一张%s生成内容。\n\n%s", cardNameFor(t), messageInstructions)
}

// descriptionPrompt asks for an English image prompt of at most 50 words
func descriptionPrompt(subject, theme string) string {
	themeLine := ""
	if theme != "" {
		themeLine = "主题：" + theme
	}
	return fmt.Sprintf("请为一张%s卡片生成一个精美的画面描述。\n%s\n要求：描述应该生动、具体，适合作为AI绘画的提示词（英文，50词以内）。\n只返回描述文字，不要其他内容。", subject, themeLine)
}
