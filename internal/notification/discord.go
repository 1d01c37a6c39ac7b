package notification

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DiscordAnnouncer posts auction results to an admin Discord channel.
type DiscordAnnouncer struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordAnnouncer(botToken, channelID string) (*DiscordAnnouncer, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &DiscordAnnouncer{
		session:   session,
		channelID: channelID,
	}, nil
}

func (d *DiscordAnnouncer) Announce(ctx context.Context, message string) error {
	_, err := d.session.ChannelMessageSend(d.channelID, message, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	return nil
}
