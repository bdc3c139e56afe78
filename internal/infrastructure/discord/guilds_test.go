package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockCache struct{ mock.Mock }

func (m *mockCache) Guild(guildID string) (*discordgo.Guild, error) {
	args := m.Called(guildID)
	if g, _ := args.Get(0).(*discordgo.Guild); g != nil {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAPI struct{ mock.Mock }

func (m *mockAPI) Guild(guildID string, _ ...discordgo.RequestOption) (*discordgo.Guild, error) {
	args := m.Called(guildID)
	if g, _ := args.Get(0).(*discordgo.Guild); g != nil {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) GuildMember(guildID, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	args := m.Called(guildID, userID)
	if mem, _ := args.Get(0).(*discordgo.Member); mem != nil {
		return mem, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) GuildMemberRoleAdd(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	return m.Called(guildID, userID, roleID).Error(0)
}

// --- tests ---

func TestResolveGuild_FromCache(t *testing.T) {
	cache, api := &mockCache{}, &mockAPI{}
	cache.On("Guild", "G1").Return(&discordgo.Guild{ID: "G1"}, nil)

	g := &Guilds{cache: cache, api: api}
	require.NoError(t, g.ResolveGuild(context.Background(), "G1"))
	api.AssertNotCalled(t, "Guild", mock.Anything)
}

func TestResolveGuild_FallsBackToREST(t *testing.T) {
	cache, api := &mockCache{}, &mockAPI{}
	cache.On("Guild", "G1").Return(nil, discordgo.ErrStateNotFound)
	api.On("Guild", "G1").Return(&discordgo.Guild{ID: "G1"}, nil)

	g := &Guilds{cache: cache, api: api}
	require.NoError(t, g.ResolveGuild(context.Background(), "G1"))
	api.AssertExpectations(t)
}

func TestResolveGuild_NotFound(t *testing.T) {
	cache, api := &mockCache{}, &mockAPI{}
	cache.On("Guild", "G1").Return(nil, discordgo.ErrStateNotFound)
	api.On("Guild", "G1").Return(nil, errors.New("HTTP 404 Not Found"))

	g := &Guilds{cache: cache, api: api}
	err := g.ResolveGuild(context.Background(), "G1")
	assert.ErrorIs(t, err, domain.ErrGuildNotFound)
}

func TestGrantRole_Success(t *testing.T) {
	api := &mockAPI{}
	api.On("GuildMember", "G1", "U1").Return(&discordgo.Member{}, nil)
	api.On("GuildMemberRoleAdd", "G1", "U1", "R1").Return(nil)

	g := &Guilds{api: api}
	require.NoError(t, g.GrantRole(context.Background(), "G1", "U1", "R1"))
	api.AssertExpectations(t)
}

func TestGrantRole_MemberMissing(t *testing.T) {
	api := &mockAPI{}
	api.On("GuildMember", "G1", "U1").Return(nil, errors.New("Unknown Member"))

	g := &Guilds{api: api}
	err := g.GrantRole(context.Background(), "G1", "U1", "R1")
	assert.ErrorIs(t, err, domain.ErrRoleGrant)
	api.AssertNotCalled(t, "GuildMemberRoleAdd", mock.Anything, mock.Anything, mock.Anything)
}

func TestGrantRole_MissingPermission(t *testing.T) {
	api := &mockAPI{}
	api.On("GuildMember", "G1", "U1").Return(&discordgo.Member{}, nil)
	api.On("GuildMemberRoleAdd", "G1", "U1", "R1").Return(errors.New("Missing Permissions"))

	g := &Guilds{api: api}
	err := g.GrantRole(context.Background(), "G1", "U1", "R1")
	assert.ErrorIs(t, err, domain.ErrRoleGrant)
	assert.Contains(t, err.Error(), "Missing Permissions")
}
