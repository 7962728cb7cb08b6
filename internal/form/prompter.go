package form

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/Avyakta000/mcp-client/internal/api"
)

// ErrAborted is returned when the user cancels the interactive form with
// Ctrl-C or Ctrl-D.
var ErrAborted = errors.New("form aborted")

// Prompter walks a user through the open dialog field by field on a
// terminal. Entering an empty line keeps the current value, which makes
// edit mode a review pass over the pre-populated state.
type Prompter struct {
	modal *Modal
	rl    *readline.Instance
}

// NewPrompter creates a prompter over the given dialog.
func NewPrompter(modal *Modal) (*Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt: %w", err)
	}
	return &Prompter{modal: modal, rl: rl}, nil
}

// Close releases the underlying readline instance.
func (p *Prompter) Close() error {
	return p.rl.Close()
}

// Run prompts for every field of the open dialog. The collected values
// land in the modal's state; submission stays with the caller so guard
// and validation behavior is identical to the non-interactive path.
func (p *Prompter) Run() error {
	if !p.modal.IsOpen() {
		return api.ErrFormClosed
	}
	state := p.modal.State()

	name, err := p.ask("name", state.Name)
	if err != nil {
		return err
	}
	description, err := p.ask("description", state.Description)
	if err != nil {
		return err
	}

	transport := state.Transport
	for {
		raw, err := p.ask("transport (sse, streamable_http, stdio)", string(transport))
		if err != nil {
			return err
		}
		parsed, parseErr := api.ParseTransport(raw)
		if parseErr == nil {
			transport = parsed
			break
		}
		fmt.Fprintln(p.rl.Stdout(), parseErr.Error())
	}

	p.modal.Update(func(s *State) {
		s.Name = name
		s.Description = description
		s.Transport = transport
	})

	for _, hint := range Guidance(transport) {
		fmt.Fprintf(p.rl.Stdout(), "  %s\n", hint)
	}

	if transport == api.TransportStdio {
		command, err := p.ask("command", state.Command)
		if err != nil {
			return err
		}
		argsJSON, err := p.ask("args (JSON array)", state.ArgsJSON)
		if err != nil {
			return err
		}
		p.modal.Update(func(s *State) {
			s.Command = command
			s.ArgsJSON = argsJSON
		})
	} else {
		url, err := p.ask("url", state.URL)
		if err != nil {
			return err
		}
		p.modal.Update(func(s *State) { s.URL = url })
		if err := p.askHeaders(); err != nil {
			return err
		}
	}

	requiresOAuth2, err := p.askBool("requires oauth2", state.RequiresOAuth2)
	if err != nil {
		return err
	}
	isPublic, err := p.askBool("public", state.IsPublic)
	if err != nil {
		return err
	}
	p.modal.Update(func(s *State) {
		s.RequiresOAuth2 = requiresOAuth2
		s.IsPublic = isPublic
	})
	return nil
}

// ask reads one field, returning the current value when the input is
// empty.
func (p *Prompter) ask(label, current string) (string, error) {
	if current != "" {
		p.rl.SetPrompt(fmt.Sprintf("%s [%s]: ", label, current))
	} else {
		p.rl.SetPrompt(fmt.Sprintf("%s: ", label))
	}
	line, err := p.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", ErrAborted
		}
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}

func (p *Prompter) askBool(label string, current bool) (bool, error) {
	currentStr := "n"
	if current {
		currentStr = "y"
	}
	for {
		raw, err := p.ask(label+" (y/n)", currentStr)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(raw) {
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		default:
			fmt.Fprintln(p.rl.Stdout(), "please answer y or n")
		}
	}
}

// askHeaders runs the add-header loop. The disclosure opens as soon as the
// user chooses to add one, matching the collapsed-on-open default.
func (p *Prompter) askHeaders() error {
	for {
		add, err := p.askBool("add custom header", false)
		if err != nil {
			return err
		}
		if !add {
			return nil
		}
		if !p.modal.HeadersShown() {
			p.modal.ToggleHeaders()
		}
		key, err := p.ask("header key", "")
		if err != nil {
			return err
		}
		value, err := p.ask("header value", "")
		if err != nil {
			return err
		}
		p.modal.AddHeader(key, value)
	}
}
