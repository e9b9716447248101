package tutor

import (
	"fmt"
	"strings"

	"github.com/vytor/ncertflash/internal/vark"
)

var styleGuidance = map[vark.Style]string{
	vark.Visual:      "Use diagrams described in words, visual metaphors and bullet points.",
	vark.Auditory:    "Explain conversationally, with mnemonics and patterns the student can say out loud.",
	vark.Reading:     "Give structured written explanations with headings and precise definitions.",
	vark.Kinesthetic: "Use hands-on activities, experiments and real-world examples.",
}

// ChatContext describes the learner and topic for a tutor conversation.
type ChatContext struct {
	Style      vark.Style
	ClassLevel int
	Subject    string
	Topic      string
}

// SystemPrompt builds the tutor's system prompt for the given context.
func SystemPrompt(c ChatContext) string {
	if c.ClassLevel == 0 {
		c.ClassLevel = 6
	}
	if c.Subject == "" {
		c.Subject = "General"
	}
	if c.Topic == "" {
		c.Topic = "General Knowledge"
	}
	guidance, ok := styleGuidance[c.Style]
	if !ok {
		guidance = styleGuidance[vark.Visual]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an NCERT tutor for Class %d %s. The current topic is %q.\n", c.ClassLevel, c.Subject, c.Topic)
	fmt.Fprintf(&b, "Learning style: %s. %s\n", c.Style, guidance)
	fmt.Fprintf(&b, "Be encouraging, explain step by step in simple language for a Class %d student and keep replies short.", c.ClassLevel)
	return b.String()
}

// FallbackReply is returned to the student when no model is reachable.
const FallbackReply = `I'm having trouble connecting right now.

In the meantime, here are some general study tips:
- Break down complex topics into smaller parts
- Practice with examples
- Review regularly using spaced repetition
- Don't hesitate to ask your teacher for help!

Please try again in a moment.`
