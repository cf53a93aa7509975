package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/display"
	"github.com/lox/unoforbots/internal/game"
)

// HumanAgent implements game.Agent by asking a person through the TUI
type HumanAgent struct {
	model      *TUIModel
	logger     *log.Logger
	pendingUno bool // "uno" typed ahead of the play
}

// NewHumanAgent creates a new agent backed by the model
func NewHumanAgent(model *TUIModel, logger *log.Logger) *HumanAgent {
	return &HumanAgent{
		model:  model,
		logger: logger.WithPrefix("human"),
	}
}

// MakeDecision blocks until the player enters a command that ends the turn
func (h *HumanAgent) MakeDecision(view game.View) game.Decision {
	h.model.SetHumanTurn(true, view.Hand, view.LegalCards)
	defer h.model.SetHumanTurn(false, nil, nil)

	for {
		action, args, shouldContinue, err := h.model.WaitForAction()
		if err != nil {
			h.logger.Error("Error in WaitForAction", "error", err)
			h.model.AddLogEntry(fmt.Sprintf("Error: %s", err.Error()))
			continue
		}
		h.logger.Debug("Received user action", "action", action, "args", args, "continue", shouldContinue)
		if !shouldContinue {
			return game.Decision{Action: game.Quit, Reasoning: "Player quit"}
		}

		if decision, done := h.processAction(view, action, args); done {
			if decision.Action != game.UseCheat {
				h.pendingUno = false
			}
			return decision
		}
	}
}

// processAction handles one command. done is false for commands that only
// show information.
func (h *HumanAgent) processAction(view game.View, action string, args []string) (game.Decision, bool) {
	switch action {
	case "":
		return game.Decision{}, false
	case "play", "p":
		return h.handlePlay(view, args)
	case "draw", "d":
		return game.Decision{Action: game.Draw, SayUno: h.pendingUno, Reasoning: "Player drew"}, true
	case "uno", "u":
		h.pendingUno = true
		h.model.AddLogEntry("You will call UNO with your next move")
		return game.Decision{}, false
	case "code", "cheat":
		if len(args) == 0 {
			h.model.AddLogEntry("Error: Please specify a cheat code")
			return game.Decision{}, false
		}
		return game.Decision{Action: game.UseCheat, Cheat: parseCheat(args[0]), Reasoning: "Player used a cheat code"}, true
	case "hand", "h", "cards":
		h.showHand(view)
		return game.Decision{}, false
	case "help", "?":
		h.showHelp()
		return game.Decision{}, false
	case "quit", "q", "exit":
		return game.Decision{Action: game.Quit, Reasoning: "Player quit"}, true
	default:
		h.model.AddLogEntry(fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", action))
		return game.Decision{}, false
	}
}

// handlePlay parses "play <id> [colour] [uno]"
func (h *HumanAgent) handlePlay(view game.View, args []string) (game.Decision, bool) {
	if len(args) == 0 {
		h.model.AddLogEntry("Error: Please specify a card id, e.g. 'play 12'")
		return game.Decision{}, false
	}
	id, err := strconv.Atoi(strings.Trim(args[0], "[]"))
	if err != nil {
		h.model.AddLogEntry(fmt.Sprintf("Error: Invalid card id: %s", args[0]))
		return game.Decision{}, false
	}

	decision := game.Decision{Action: game.Play, CardID: id, SayUno: h.pendingUno, Reasoning: "Player played"}
	for _, arg := range args[1:] {
		if strings.EqualFold(arg, "uno") {
			decision.SayUno = true
			continue
		}
		color, err := deck.ParseColor(arg)
		if err != nil || !color.IsOrdinary() {
			h.model.AddLogEntry(fmt.Sprintf("Error: Invalid colour: %s", arg))
			return game.Decision{}, false
		}
		decision.Color = color
	}

	// The engine rejects unknown ids; only wilds need more input here
	if i := deck.IndexOf(view.Hand, id); i >= 0 && view.Hand[i].IsWild() && !decision.Color.IsOrdinary() {
		color, ok := h.askColor()
		if !ok {
			return game.Decision{}, false
		}
		decision.Color = color
	}
	return decision, true
}

// askColor prompts until a colour is given. ok is false on "cancel" or quit.
func (h *HumanAgent) askColor() (deck.Color, bool) {
	h.model.SetPrompt("Choose a colour: red, green, blue or yellow (or cancel)")
	defer h.model.SetPrompt("")

	for {
		action, _, shouldContinue, err := h.model.WaitForAction()
		if err != nil || !shouldContinue {
			// put the quit back for MakeDecision
			h.model.send(ActionResult{Action: "quit", Continue: false})
			return deck.Wild, false
		}
		switch action {
		case "":
			continue
		case "cancel", "c":
			return deck.Wild, false
		}
		color, err := deck.ParseColor(action)
		if err == nil && color.IsOrdinary() {
			return color, true
		}
		h.model.AddLogEntry(fmt.Sprintf("Error: Invalid colour: %s", action))
	}
}

func (h *HumanAgent) showHand(view game.View) {
	h.model.AddLogEntry("Your hand: " + display.CardLabels(view.Hand))
	if len(view.LegalCards) == 0 {
		h.model.AddLogEntry("Nothing playable, you have to draw")
		return
	}
	h.model.AddLogEntry("Playable: " + display.CardLabels(view.LegalCards))
}

func (h *HumanAgent) showHelp() {
	h.model.AddLogEntries(
		"Commands:",
		"  play <id> [colour] [uno]  play a card, wilds take a colour (p)",
		"  draw                      draw a card (d)",
		"  uno                       call UNO with your next move (u)",
		"  hand                      show your hand (h)",
		"  code <cheat>              use a cheat code",
		"  quit                      leave the game (q)",
	)
}

// parseCheat matches a typed code against the known ones ignoring case. Unknown
// codes pass through so the engine can reject them.
func parseCheat(s string) game.Cheat {
	for _, c := range game.Cheats() {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return game.Cheat(s)
}
