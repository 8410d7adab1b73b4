package model

// Timeout duration bounds, in seconds. TimeoutDisabled is the sentinel
// meaning the turn timer never arms.
const (
	TimeoutDisabled   = -1
	MinTimeoutSeconds = 20
	MaxTimeoutSeconds = 3600
)

// Settings holds the configurable rule set for one game. Editable on the
// lobby; snapshotted immutably at game start.
type Settings struct {
	// TimeoutSeconds is how long a turn may idle before the timeout
	// fires, or TimeoutDisabled.
	TimeoutSeconds int `json:"timeout_seconds"`

	KickOnTimeout       bool `json:"kick_on_timeout"`
	AllowSkipping       bool `json:"allow_skipping"`
	AntiSabotage        bool `json:"anti_sabotage"`
	AllowStacking       bool `json:"allow_stacking"`
	RandomizePlayerList bool `json:"randomize_player_list"`
	ResendGameMessage   bool `json:"resend_game_message"`
	SevenAndZero        bool `json:"seven_and_zero"`
	AllowRejoin         bool `json:"allow_rejoin"`
}

// DefaultSettings returns the engine defaults applied to a new lobby.
func DefaultSettings() Settings {
	return Settings{
		TimeoutSeconds:      150,
		KickOnTimeout:       true,
		AllowSkipping:       false,
		AntiSabotage:        true,
		AllowStacking:       true,
		RandomizePlayerList: true,
		ResendGameMessage:   true,
		SevenAndZero:        false,
		AllowRejoin:         true,
	}
}

// TimeoutEnabled reports whether the turn timer should arm at all.
func (s Settings) TimeoutEnabled() bool {
	return s.TimeoutSeconds != TimeoutDisabled
}
