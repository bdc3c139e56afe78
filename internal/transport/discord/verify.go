// Package discord routes gateway interactions to the verification service.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/application/verification"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/domain"
)

// googleBlue is the embed accent colour.
const googleBlue = 0x4285F4

// Responder is the interaction reply surface of *discordgo.Session.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type CommandHandlerConfig struct {
	Institution string
	// GuildID restricts the command to one server when RequireGuild is set.
	GuildID      string
	RequireGuild bool
}

// CommandHandler answers the verify slash command.
type CommandHandler struct {
	svc verification.Service
	rsp Responder
	cfg CommandHandlerConfig
	log *slog.Logger
}

func NewCommandHandler(svc verification.Service, rsp Responder, cfg CommandHandlerConfig, logger *slog.Logger) *CommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandHandler{svc: svc, rsp: rsp, cfg: cfg, log: logger}
}

// OnInteractionCreate has the signature discordgo.Session.AddHandler expects.
func (h *CommandHandler) OnInteractionCreate(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
	h.Handle(context.Background(), ic.Interaction)
}

// Handle dispatches one interaction. Reply errors are logged and dropped.
func (h *CommandHandler) Handle(ctx context.Context, i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name != domain.VerifyCommandName {
		return
	}
	h.verify(ctx, i)
}

func (h *CommandHandler) verify(ctx context.Context, i *discordgo.Interaction) {
	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		h.replyEphemeral(ctx, i, "This command can only be used in a server.")
		return
	}
	if h.cfg.RequireGuild && i.GuildID != h.cfg.GuildID {
		h.replyEphemeral(ctx, i, fmt.Sprintf("This command can only be used in the %s server.", h.cfg.Institution))
		return
	}

	err := h.rsp.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}, discordgo.WithContext(ctx))
	if err != nil {
		h.log.WarnContext(ctx, "defer verify reply failed", "interaction_id", i.ID, "err", err)
	}

	userID := i.Member.User.ID
	authURL, err := h.svc.Begin(ctx, userID)
	if err != nil {
		h.log.ErrorContext(ctx, "start verification failed", "user_id", userID, "err", err)
		msg := "Something went wrong starting verification. Please try again."
		h.edit(ctx, i, &discordgo.WebhookEdit{Content: &msg})
		return
	}

	embeds := []*discordgo.MessageEmbed{verifyEmbed(h.cfg.Institution)}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Verify via Google", Style: discordgo.LinkButton, URL: authURL},
		}},
	}
	h.edit(ctx, i, &discordgo.WebhookEdit{Embeds: &embeds, Components: &components})
}

func verifyEmbed(institution string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s Email Verification", institution),
		Description: fmt.Sprintf("Click the button below to verify your %s email via Google login.\n\n", institution) +
			"Your email address may be stored in Google systems and (temporary) application memory " +
			"in order for the application to run properly, but it will not be shared.",
		Color: googleBlue,
	}
}

func (h *CommandHandler) replyEphemeral(ctx context.Context, i *discordgo.Interaction, content string) {
	err := h.rsp.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: discordgo.MessageFlagsEphemeral},
	}, discordgo.WithContext(ctx))
	if err != nil {
		h.log.WarnContext(ctx, "verify reply failed", "interaction_id", i.ID, "err", err)
	}
}

func (h *CommandHandler) edit(ctx context.Context, i *discordgo.Interaction, e *discordgo.WebhookEdit) {
	if _, err := h.rsp.InteractionResponseEdit(i, e, discordgo.WithContext(ctx)); err != nil {
		h.log.WarnContext(ctx, "edit verify reply failed", "interaction_id", i.ID, "err", err)
	}
}
