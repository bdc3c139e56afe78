package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/domain"
)

// commandCreator is satisfied by *discordgo.Session.
type commandCreator interface {
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
}

// VerifyCommand describes the verify slash command.
func VerifyCommand(institution string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        domain.VerifyCommandName,
		Description: fmt.Sprintf("Verify your %s email to get access to the server.", institution),
	}
}

// RegisterCommands creates the verify command for appID, either on guildID or
// globally depending on scope. Re-creating an existing command overwrites it.
func RegisterCommands(c commandCreator, appID, guildID string, scope domain.CommandScope, institution string) (*discordgo.ApplicationCommand, error) {
	target := guildID
	if scope == domain.CommandScopeGlobal {
		target = ""
	}
	cmd, err := c.ApplicationCommandCreate(appID, target, VerifyCommand(institution))
	if err != nil {
		return nil, fmt.Errorf("register %s command: %w", domain.VerifyCommandName, err)
	}
	return cmd, nil
}
