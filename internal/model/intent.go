package model

// SettingToggle is a typed intent for flipping one boolean setting.
// Raw UI identifiers are decoded into this set once at the transport
// boundary; the core never switches on raw strings.
type SettingToggle string

const (
	ToggleKickOnTimeout       SettingToggle = "kick-on-timeout"
	ToggleAllowSkipping       SettingToggle = "allow-skipping"
	ToggleAntiSabotage        SettingToggle = "anti-sabotage"
	ToggleAllowStacking       SettingToggle = "allow-stacking"
	ToggleRandomizePlayerList SettingToggle = "randomize-list"
	ToggleResendGameMessage   SettingToggle = "resend-game-message"
	ToggleSevenAndZero        SettingToggle = "7-and-0"
	ToggleAllowRejoin         SettingToggle = "can-rejoin"
)

// ParseSettingToggle decodes a raw setting identifier. The bool result
// is false for identifiers outside the closed toggle set.
func ParseSettingToggle(raw string) (SettingToggle, bool) {
	t := SettingToggle(raw)
	switch t {
	case ToggleKickOnTimeout, ToggleAllowSkipping, ToggleAntiSabotage,
		ToggleAllowStacking, ToggleRandomizePlayerList, ToggleResendGameMessage,
		ToggleSevenAndZero, ToggleAllowRejoin:
		return t, true
	}
	return "", false
}

// Apply flips the toggled flag on the settings record.
func (t SettingToggle) Apply(s *Settings) {
	switch t {
	case ToggleKickOnTimeout:
		s.KickOnTimeout = !s.KickOnTimeout
	case ToggleAllowSkipping:
		s.AllowSkipping = !s.AllowSkipping
	case ToggleAntiSabotage:
		s.AntiSabotage = !s.AntiSabotage
	case ToggleAllowStacking:
		s.AllowStacking = !s.AllowStacking
	case ToggleRandomizePlayerList:
		s.RandomizePlayerList = !s.RandomizePlayerList
	case ToggleResendGameMessage:
		s.ResendGameMessage = !s.ResendGameMessage
	case ToggleSevenAndZero:
		s.SevenAndZero = !s.SevenAndZero
	case ToggleAllowRejoin:
		s.AllowRejoin = !s.AllowRejoin
	}
}
