package discord

import "github.com/bwmarrin/discordgo"

// CommandName is the slash command exposed to operators.
const CommandName = "blocklocker"

// Commands returns all slash commands for the blocklocker module.
func Commands() []*discordgo.ApplicationCommand {
	manageServer := int64(discordgo.PermissionManageServer)

	return []*discordgo.ApplicationCommand{
		{
			Name:                     CommandName,
			Description:              "Inspect and manage locked blocks",
			DefaultMemberPermissions: &manageServer,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Show the protection at a position",
					Options:     locationOptions(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List blocks locked by a player",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "player",
							Description: "Player UUID",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show protection statistics",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "release",
					Description: "Remove the protection at a position (administrators only)",
					Options:     locationOptions(),
				},
			},
		},
	}
}

func locationOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "world",
			Description: "World name",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "x",
			Description: "X coordinate",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "y",
			Description: "Y coordinate",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "z",
			Description: "Z coordinate",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "dimension",
			Description: "Dimension id (defaults to 0)",
			Required:    false,
		},
	}
}
