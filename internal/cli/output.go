package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Lobby:
		o.printLobby(v)
	case Settings:
		o.printSettings(v)
	case GameState:
		o.printGameState(v)
	case Session:
		o.printSession(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Settings response type
type Settings struct {
	TimeoutSeconds      int  `json:"timeout_seconds"`
	KickOnTimeout       bool `json:"kick_on_timeout"`
	AllowSkipping       bool `json:"allow_skipping"`
	AntiSabotage        bool `json:"anti_sabotage"`
	AllowStacking       bool `json:"allow_stacking"`
	RandomizePlayerList bool `json:"randomize_player_list"`
	ResendGameMessage   bool `json:"resend_game_message"`
	SevenAndZero        bool `json:"seven_and_zero"`
	AllowRejoin         bool `json:"allow_rejoin"`
}

// Lobby response type
type Lobby struct {
	Channel   string   `json:"channel"`
	HostID    string   `json:"host_id"`
	Players   []string `json:"players"`
	Settings  Settings `json:"settings"`
	AllowSolo bool     `json:"allow_solo"`
}

// Card response type
type Card struct {
	Card    string `json:"card"`
	Display string `json:"display"`
}

// GameState response type
type GameState struct {
	ID            string         `json:"id"`
	Channel       string         `json:"channel"`
	HostID        string         `json:"host_id"`
	Players       []string       `json:"players"`
	CurrentPlayer string         `json:"current_player"`
	CurrentCard   Card           `json:"current_card"`
	CurrentColor  string         `json:"current_color"`
	HandCounts    map[string]int `json:"hand_counts"`
	MyHand        []Card         `json:"my_hand,omitempty"`
	PileCount     int            `json:"pile_count"`
	Settings      Settings       `json:"settings"`
}

// Session response type
type Session struct {
	State string     `json:"state"`
	Lobby *Lobby     `json:"lobby,omitempty"`
	Game  *GameState `json:"game,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printLobby(l Lobby) {
	fmt.Printf("Lobby: %s\n", l.Channel)
	fmt.Printf("Host: %s\n", l.HostID)
	if l.AllowSolo {
		fmt.Println("Solo play: allowed")
	}
	fmt.Printf("Players (%d):\n", len(l.Players))
	for _, p := range l.Players {
		hostStr := ""
		if p == l.HostID {
			hostStr = " [host]"
		}
		fmt.Printf("  - %s%s\n", p, hostStr)
	}
	fmt.Println()
	o.printSettings(l.Settings)
}

func (o *Output) printSettings(s Settings) {
	if s.TimeoutSeconds < 0 {
		fmt.Println("Timeout: disabled")
	} else {
		fmt.Printf("Timeout: %ds\n", s.TimeoutSeconds)
	}
	flag := func(name string, on bool) {
		state := "off"
		if on {
			state = "on"
		}
		fmt.Printf("  %-22s %s\n", name, state)
	}
	flag("kick-on-timeout", s.KickOnTimeout)
	flag("allow-skipping", s.AllowSkipping)
	flag("anti-sabotage", s.AntiSabotage)
	flag("allow-stacking", s.AllowStacking)
	flag("randomize-list", s.RandomizePlayerList)
	flag("resend-game-message", s.ResendGameMessage)
	flag("7-and-0", s.SevenAndZero)
	flag("can-rejoin", s.AllowRejoin)
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s (channel %s)\n", g.ID, g.Channel)
	fmt.Printf("Current card: %s (%s)\n", g.CurrentCard.Display, g.CurrentColor)
	fmt.Printf("Current player: %s\n", g.CurrentPlayer)
	fmt.Printf("Draw pile: %d cards\n", g.PileCount)

	fmt.Println("Players:")
	for _, p := range g.Players {
		marker := ""
		if p == g.CurrentPlayer {
			marker = " <- to play"
		}
		fmt.Printf("  %s: %d cards%s\n", p, g.HandCounts[p], marker)
	}

	if len(g.MyHand) > 0 {
		cards := make([]string, len(g.MyHand))
		for i, c := range g.MyHand {
			cards[i] = c.Display
		}
		sort.Strings(cards)
		fmt.Printf("\nYour hand: %s\n", strings.Join(cards, " "))
	}
}

func (o *Output) printSession(s Session) {
	fmt.Printf("State: %s\n", s.State)
	switch {
	case s.Lobby != nil:
		o.printLobby(*s.Lobby)
	case s.Game != nil:
		o.printGameState(*s.Game)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
