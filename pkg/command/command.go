package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bwmarrin/discordgo"
)

type (
	Page struct {
		Limit  int
		Offset int
	}

	Command interface {
		ApplicationCommand() *discordgo.ApplicationCommand
		Handle(context.Context, *discordgo.Session, *discordgo.InteractionCreate) error
		Autocomplete(context.Context, *discordgo.Session, *discordgo.InteractionCreate) error
		Button(context.Context, *discordgo.Session, *discordgo.InteractionCreate, io.Reader) error
		Name() string
	}

	action interface {
		Name() byte
	}

	handler[T any] interface {
		Handle(context.Context, *T) (*discordgo.InteractionResponseData, error)
	}
	autocompleter[T any] interface {
		Autocomplete(context.Context, *T) ([]*discordgo.ApplicationCommandOptionChoice, error)
	}
	pager[T any] interface {
		Paginate(context.Context, paginator[T]) (*discordgo.InteractionResponseData, error)
		Initial() Page
	}

	followUp[T any] struct {
		Options T
	}
	paginator[T any] struct {
		Options T
		Page    Page
	}

	command[T any] struct {
		command       discordgo.ApplicationCommand
		handler       handler[T]
		autocompleter autocompleter[T]
		pager         pager[T]
	}
)

func (paginator[T]) Name() byte {
	return 'p'
}

func (followUp[T]) Name() byte {
	return 'f'
}

var (
	ErrCommandFormat           = errors.New("invalid command format")
	ErrUnrecognizedInteraction = errors.New("could not handle interaction")
)

func (cmd command[T]) ApplicationCommand() *discordgo.ApplicationCommand {
	return &cmd.command
}

func (cmd command[T]) Name() string {
	return cmd.command.Name
}

func (cmd command[T]) responseBody(ctx context.Context, opt T) (*discordgo.InteractionResponseData, error) {
	switch {
	case cmd.handler != nil:
		body, err := cmd.handler.Handle(ctx, &opt)
		if err != nil {
			return nil, fmt.Errorf("error while calling handler: %w", err)
		}
		return body, nil
	case cmd.pager != nil:
		body, err := cmd.pager.Paginate(ctx, paginator[T]{
			Options: opt,
			Page:    cmd.pager.Initial(),
		})
		if err != nil {
			return nil, fmt.Errorf("error while calling pagination handler: %w", err)
		}
		return body, nil
	default:
		return nil, fmt.Errorf("no handler for command: %w", ErrUnrecognizedInteraction)
	}
}

func (cmd command[T]) Handle(
	ctx context.Context,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	data := interaction.ApplicationCommandData()

	var structure T
	err := decodeOptions(data.Options, &structure)
	if err != nil {
		return fmt.Errorf("error while decoding options for command %q: %w", data.Name, err)
	}

	body, err := cmd.responseBody(ctx, structure)
	if err != nil {
		return fmt.Errorf("could not handle command %q: %w", cmd.Name(), err)
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: body,
	})
	if err != nil {
		return fmt.Errorf("error while responding to command %q: %w", cmd.Name(), err)
	}

	return nil
}

func (cmd command[T]) Button(
	ctx context.Context,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	reader io.Reader,
) error {
	var tag [1]byte
	_, err := io.ReadFull(reader, tag[:])
	if err != nil {
		return fmt.Errorf("could not read action from button state: %w", err)
	}

	switch tag[0] {
	case paginator[T]{}.Name():
		if cmd.pager == nil {
			return fmt.Errorf("command %q does not paginate: %w", cmd.Name(), ErrUnrecognizedInteraction)
		}

		p, err := unmarshal[paginator[T]](reader)
		if err != nil {
			return fmt.Errorf("error while deserializing pagination data: %w", err)
		}

		body, err := cmd.pager.Paginate(ctx, *p)
		if err != nil {
			return fmt.Errorf("error while calling pagination handler: %w", err)
		}

		err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: body,
		})
		if err != nil {
			return fmt.Errorf("failed to update paginated message: %w", err)
		}

	case followUp[T]{}.Name():
		f, err := unmarshal[followUp[T]](reader)
		if err != nil {
			return fmt.Errorf("error while deserializing follow-up data: %w", err)
		}

		body, err := cmd.responseBody(ctx, f.Options)
		if err != nil {
			return fmt.Errorf("could not handle command %q: %w", cmd.Name(), err)
		}

		_, err = sess.ChannelMessageSendComplex(interaction.ChannelID, &discordgo.MessageSend{
			Content:   body.Content,
			Embeds:    body.Embeds,
			Reference: interaction.Message.Reference(),
		})
		if err != nil {
			return fmt.Errorf("error while sending follow-up reply: %w", err)
		}

		err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		if err != nil {
			return fmt.Errorf("failed to complete interaction: %w", err)
		}

	default:
		return fmt.Errorf("unknown button action %q: %w", tag[0], ErrUnrecognizedInteraction)
	}

	return nil
}

func (cmd command[T]) Autocomplete(
	ctx context.Context,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	if cmd.autocompleter == nil {
		return fmt.Errorf("command %q has no autocompletion: %w", cmd.Name(), ErrUnrecognizedInteraction)
	}

	var structure T
	err := decodeOptions(interaction.ApplicationCommandData().Options, &structure)
	if err != nil {
		return fmt.Errorf("error while decoding options for autocomplete: %w", err)
	}

	choices, err := cmd.autocompleter.Autocomplete(ctx, &structure)
	if err != nil {
		return fmt.Errorf("error while calling autocompletion handler: %w", err)
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		return fmt.Errorf("error while sending autocompletions: %w", err)
	}

	return nil
}
