// Package discord adapts discordgo to the narrow operations the verifier needs.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// NewSession builds a bot session. Only the Guilds intent is requested: it
// keeps the guild cache populated and needs no privileged approval.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return s, nil
}
