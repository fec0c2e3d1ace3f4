package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMessageStructured(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Message
	}{
		{
			name: "plain object",
			text: `{"title":"生日快乐","message":["愿你快乐","愿你健康"],"signature":"小明"}`,
			want: Message{Title: "生日快乐", Lines: []string{"愿你快乐", "愿你健康"}, Signature: "小明", Source: SourceStructured},
		},
		{
			name: "json fence",
			text: "```json\n{\"title\":\"新年好\",\"message\":[\"万事如意\"],\"signature\":\"家人\"}\n```",
			want: Message{Title: "新年好", Lines: []string{"万事如意"}, Signature: "家人", Source: SourceStructured},
		},
		{
			name: "bare fence with prose",
			text: "好的，这是内容：\n```\n{\"title\":\"谢谢你\",\"message\":\"感谢有你\",\"signature\":\"朋友\"}\n```\n希望你喜欢",
			want: Message{Title: "谢谢你", Lines: []string{"感谢有你"}, Signature: "朋友", Source: SourceStructured},
		},
		{
			name: "missing fields",
			text: `{"message": []}`,
			want: Message{Title: DefaultTitle, Lines: []string{DefaultLine}, Signature: DefaultSignature, Source: SourceStructured},
		},
		{
			name: "message of unexpected type",
			text: `{"title":"你好","message":42}`,
			want: Message{Title: "你好", Lines: []string{DefaultLine}, Signature: DefaultSignature, Source: SourceStructured},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage(tt.text))
		})
	}
}

func TestExtractMessageHeuristic(t *testing.T) {
	text := "标题：新春快乐\n\"愿你新年大吉\"\n愿你万事顺意\n署名：老王"

	m := ExtractMessage(text)
	assert.Equal(t, SourceHeuristic, m.Source)
	assert.Equal(t, "新春快乐", m.Title)
	assert.Equal(t, "老王", m.Signature)
	assert.Equal(t, []string{"愿你新年大吉", "愿你万事顺意"}, m.Lines)
}

func TestExtractMessageHeuristicEnglishLabels(t *testing.T) {
	text := "Title: 圣诞快乐\nSignature: Bob\n'愿你平安'"

	m := ExtractMessage(text)
	assert.Equal(t, SourceHeuristic, m.Source)
	assert.Equal(t, "圣诞快乐", m.Title)
	assert.Equal(t, "Bob", m.Signature)
	assert.Equal(t, []string{"愿你平安"}, m.Lines)
}

func TestExtractMessageHeuristicSkipsNoise(t *testing.T) {
	text := "```\n{\n第一句\n第二句\n第三句\n第四句\n]\n"

	m := ExtractMessage(text)
	assert.Equal(t, SourceHeuristic, m.Source)
	assert.Equal(t, DefaultTitle, m.Title)
	assert.Equal(t, DefaultSignature, m.Signature)
	assert.Equal(t, []string{"第一句", "第二句", "第三句"}, m.Lines)
}

func TestExtractMessageHeuristicDefaults(t *testing.T) {
	m := ExtractMessage("标题：\n```")

	require.Equal(t, SourceHeuristic, m.Source)
	assert.Equal(t, DefaultTitle, m.Title)
	assert.Equal(t, []string{DefaultLine}, m.Lines)
	assert.Equal(t, DefaultSignature, m.Signature)
}

func TestMessageText(t *testing.T) {
	m := Message{Lines: []string{"一", "二"}}
	assert.Equal(t, "一\n二", m.Text())
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "structured", SourceStructured.String())
	assert.Equal(t, "heuristic", SourceHeuristic.String())
	assert.Equal(t, "unknown", Source(9).String())
}
