package planner

import (
	"strings"

	"github.com/nvegesna/planmyday/internal/common"
)

// Greeting opens the chat before any planning starts.
const Greeting = "Hey there! I'm your friendly planner bot. Share how you're feeling today " +
	"and I'll get ready to craft your perfect day off. When you're ready, kick off the " +
	"planner and I'll spin up the crew."

// CompanionReply picks a canned response for the pre-plan chat. Matching is
// case-insensitive substring lookup, first bucket wins.
func CompanionReply(message string) string {
	text := strings.ToLower(message)
	switch {
	case common.HasAny(text, "hi", "hello", "hey", "namaste", "hola"):
		return "Hi! I'm all ears. Tell me the vibe you're chasing—chill, adventurous, foodie—and " +
			"kick off the planner whenever you want me to start the heavy lifting."
	case common.HasAny(text, "thanks", "thank you"):
		return "Always happy to help! Want me to start planning? Kick off the planner when you're ready."
	case common.HasAny(text, "who", "what"):
		return "I'm a mini crew of specialists—one grabs weather intel, another finds hyperlocal buzz, " +
			"and I stitch the perfect schedule together just for you."
	case common.HasAny(text, "ready", "start", "plan"):
		return "Great! Kick off the planner and I'll get to work."
	default:
		return "Love the energy! Send me anything you'd like to focus on (movies, games, cozy cafes) " +
			"and kick off the planner when you want the full itinerary."
	}
}
