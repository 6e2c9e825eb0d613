package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/notjagan/pokerank/pkg/analysis"
	"github.com/notjagan/pokerank/pkg/command"
	"github.com/notjagan/pokerank/pkg/config"
)

type Bot struct {
	config   config.DiscordConfig
	session  *discordgo.Session
	commands map[string]command.Command
}

func New(cfg config.DiscordConfig, a *analysis.Analyzer) (*Bot, error) {
	cmds, err := command.All(a, cfg)
	if err != nil {
		return nil, fmt.Errorf("error while getting all commands for bot: %w", err)
	}

	return &Bot{
		config:   cfg,
		commands: cmds,
	}, nil
}

func (bot *Bot) Close() {
	log.Println("Shutting down.")
	err := bot.session.Close()
	if err != nil {
		log.Printf("error while closing discord session: %v", err)
	}
}

var ErrNoMatchingCommand = errors.New("no matching command")

type route struct {
	cmd    command.Command
	kind   discordgo.InteractionType
	reader io.Reader
}

// route finds the command an interaction is addressed to.
func (bot *Bot) route(interaction *discordgo.InteractionCreate) (route, error) {
	var name string
	var reader io.Reader
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		name = interaction.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		var err error
		name, reader, err = command.ParseCustomID(interaction.MessageComponentData().CustomID)
		if err != nil {
			return route{}, fmt.Errorf("could not parse button state: %w", err)
		}
	default:
		return route{}, fmt.Errorf("interaction type %v: %w", interaction.Type, command.ErrUnrecognizedInteraction)
	}

	cmd, ok := bot.commands[name]
	if !ok {
		return route{}, fmt.Errorf("command %q: %w", name, ErrNoMatchingCommand)
	}

	return route{cmd: cmd, kind: interaction.Type, reader: reader}, nil
}

func (bot *Bot) handle(ctx context.Context, sess *discordgo.Session, interaction *discordgo.InteractionCreate) error {
	r, err := bot.route(interaction)
	if err != nil {
		return err
	}

	switch r.kind {
	case discordgo.InteractionApplicationCommand:
		log.Printf("COMMAND %q in GUILD %q", r.cmd.Name(), interaction.GuildID)
		return r.cmd.Handle(ctx, sess, interaction)
	case discordgo.InteractionApplicationCommandAutocomplete:
		return r.cmd.Autocomplete(ctx, sess, interaction)
	default:
		log.Printf("BUTTON %q in GUILD %q", r.cmd.Name(), interaction.GuildID)
		return r.cmd.Button(ctx, sess, interaction, r.reader)
	}
}

func (bot *Bot) initialize(ctx context.Context) error {
	sess, err := discordgo.New("Bot " + bot.config.Token)
	if err != nil {
		return fmt.Errorf("failed to instantiate discord bot: %w", err)
	}
	bot.session = sess

	bot.session.AddHandler(func(sess *discordgo.Session, interaction *discordgo.InteractionCreate) {
		err := bot.handle(ctx, sess, interaction)
		if err != nil {
			log.Printf("error while handling interaction: %v", err)
		}
	})

	err = bot.start(sess, func() string { return sess.State.User.ID })
	if err != nil {
		return err
	}

	return nil
}

// gateway is the part of a discord session the bot starts and registers commands through.
type gateway interface {
	Open() error
	Close() error
	ApplicationCommandCreate(
		appID string,
		guildID string,
		cmd *discordgo.ApplicationCommand,
		options ...discordgo.RequestOption,
	) (*discordgo.ApplicationCommand, error)
}

// start opens gw and registers every command, closing gw again if registration fails.
func (bot *Bot) start(gw gateway, appID func() string) error {
	err := gw.Open()
	if err != nil {
		return fmt.Errorf("failed to start discord session: %w", err)
	}

	err = bot.registerCommands(gw, appID())
	if err != nil {
		if cerr := gw.Close(); cerr != nil {
			log.Printf("error while closing discord session: %v", cerr)
		}
		return fmt.Errorf("error while registering commands: %w", err)
	}

	return nil
}

func (bot *Bot) Run(ctx context.Context) error {
	err := bot.initialize(ctx)
	if err != nil {
		return fmt.Errorf("error while initializing bot: %w", err)
	}

	log.Println("Hosting Pokerank bot.")
	defer bot.Close()
	<-ctx.Done()

	return nil
}

func (bot *Bot) registerCommands(gw gateway, appID string) error {
	for _, cmd := range bot.commands {
		_, err := gw.ApplicationCommandCreate(appID, bot.config.GuildID, cmd.ApplicationCommand())
		if err != nil {
			return fmt.Errorf("failed to create command %q: %w", cmd.Name(), err)
		}
	}

	return nil
}
