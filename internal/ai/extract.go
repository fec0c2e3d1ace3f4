package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Defaults used when the provider omits a field
const (
	DefaultTitle     = "美好祝愿"
	DefaultSignature = "祝福"
	DefaultLine      = "美好的祝福送给你"
)

const maxHeuristicLines = 3

// Source tells how a Message was recovered from provider text
type Source int

const (
	// SourceStructured means the text held a decodable JSON object
	SourceStructured Source = iota
	// SourceHeuristic means the fields were scraped line by line
	SourceHeuristic
)

func (s Source) String() string {
	switch s {
	case SourceStructured:
		return "structured"
	case SourceHeuristic:
		return "heuristic"
	default:
		return "unknown"
	}
}

// Message is a generated card message. Lines always holds at least one entry.
type Message struct {
	Title     string   `json:"title" yaml:"title"`
	Lines     []string `json:"message" yaml:"message"`
	Signature string   `json:"signature" yaml:"signature"`
	Source    Source   `json:"-" yaml:"-"`
}

// Text joins the message lines into a single card message
func (m Message) Text() string {
	return strings.Join(m.Lines, "\n")
}

var (
	fencePattern   = regexp.MustCompile("```json\\n?|```\\n?")
	objectPattern  = regexp.MustCompile(`(?s)\{.*\}`)
	labelSplit     = regexp.MustCompile(`[:：]`)
	bracketsOnly   = regexp.MustCompile(`^[\s{}\[\],]*$`)
	leadingQuotes  = regexp.MustCompile(`^["'】]\s*`)
	trailingQuotes = regexp.MustCompile(`["'】]\s*$`)
)

// ExtractMessage recovers a Message from free-form provider text. A JSON
// object, possibly fenced or surrounded by prose, is preferred. Otherwise
// labelled lines are scanned.
func ExtractMessage(text string) Message {
	if m, ok := parseStructured(text); ok {
		return m
	}
	return parseHeuristic(text)
}

type rawMessage struct {
	Title     string          `json:"title"`
	Message   json.RawMessage `json:"message"`
	Signature string          `json:"signature"`
}

func parseStructured(text string) (Message, bool) {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))
	if match := objectPattern.FindString(cleaned); match != "" {
		cleaned = match
	}
	if !strings.HasPrefix(cleaned, "{") {
		return Message{}, false
	}

	var raw rawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return Message{}, false
	}

	m := Message{
		Title:     strings.TrimSpace(raw.Title),
		Lines:     decodeLines(raw.Message),
		Signature: strings.TrimSpace(raw.Signature),
		Source:    SourceStructured,
	}
	return withDefaults(m), true
}

// decodeLines accepts either a list of strings or a single string
func decodeLines(data json.RawMessage) []string {
	if len(data) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		return nonEmpty(list)
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		return nonEmpty([]string{single})
	}
	return nil
}

func parseHeuristic(text string) Message {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	m := Message{
		Title:     labelled(lines, "标题", "title"),
		Signature: labelled(lines, "署名", "signature"),
		Source:    SourceHeuristic,
	}

	for _, line := range lines {
		if len(m.Lines) == maxHeuristicLines {
			break
		}
		if isLabel(line, "标题", "title", "署名", "signature") ||
			strings.Contains(line, "```") ||
			bracketsOnly.MatchString(line) {
			continue
		}
		cleaned := leadingQuotes.ReplaceAllString(line, "")
		cleaned = strings.TrimSpace(trailingQuotes.ReplaceAllString(cleaned, ""))
		if cleaned != "" {
			m.Lines = append(m.Lines, cleaned)
		}
	}

	return withDefaults(m)
}

// labelled returns the value after the first colon of the first line carrying a label
func labelled(lines []string, labels ...string) string {
	for _, line := range lines {
		if !isLabel(line, labels...) {
			continue
		}
		parts := labelSplit.Split(line, -1)
		if len(parts) < 2 {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func isLabel(line string, labels ...string) bool {
	lower := strings.ToLower(line)
	for _, label := range labels {
		if strings.Contains(lower, label) {
			return true
		}
	}
	return false
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func withDefaults(m Message) Message {
	if m.Title == "" {
		m.Title = DefaultTitle
	}
	if m.Signature == "" {
		m.Signature = DefaultSignature
	}
	if len(m.Lines) == 0 {
		m.Lines = []string{DefaultLine}
	}
	return m
}
