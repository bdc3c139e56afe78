package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/domain"
)

// guildCache is satisfied by *discordgo.State.
type guildCache interface {
	Guild(guildID string) (*discordgo.Guild, error)
}

// guildAPI is the subset of *discordgo.Session REST calls used here.
type guildAPI interface {
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// Guilds resolves guilds and grants roles through a bot session.
type Guilds struct {
	cache guildCache
	api   guildAPI
}

func NewGuilds(s *discordgo.Session) *Guilds {
	return &Guilds{cache: s.State, api: s}
}

// ResolveGuild confirms the bot can see guildID, preferring the gateway cache.
func (g *Guilds) ResolveGuild(ctx context.Context, guildID string) error {
	if g.cache != nil {
		if _, err := g.cache.Guild(guildID); err == nil {
			return nil
		}
	}
	if _, err := g.api.Guild(guildID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("fetch guild %s: %w", guildID, errors.Join(domain.ErrGuildNotFound, err))
	}
	return nil
}

// GrantRole adds roleID to userID's membership in guildID. Adding a role the
// member already has succeeds.
func (g *Guilds) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	if _, err := g.api.GuildMember(guildID, userID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("fetch member %s: %w", userID, errors.Join(domain.ErrRoleGrant, err))
	}
	if err := g.api.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("add role %s to %s: %w", roleID, userID, errors.Join(domain.ErrRoleGrant, err))
	}
	return nil
}
