package tui

import "github.com/gdamore/tcell/v2"

// Intent is a player action decoded from input
type Intent uint8

const (
	IntentNone Intent = iota
	IntentQuit
	IntentPush
	IntentHoldToggle
	IntentUpgradeMitigation
	IntentUpgradeSpeed
	IntentResetRun
	IntentResetAll
	IntentToggleMute
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Escape)
	Keys map[tcell.Key]Intent

	// Printable rune bindings
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Intent{
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyEnter:  IntentPush,
			tcell.KeyCtrlS:  IntentToggleMute,
			tcell.KeyCtrlR:  IntentResetAll,
		},
		Runes: map[rune]Intent{
			' ': IntentPush,
			'h': IntentHoldToggle,
			'm': IntentUpgradeMitigation,
			's': IntentUpgradeSpeed,
			'r': IntentResetRun,
			'q': IntentQuit,
		},
	}
}

// Lookup resolves a key event; r is consulted only for tcell.KeyRune
func (t *KeyTable) Lookup(key tcell.Key, r rune) Intent {
	if key == tcell.KeyRune {
		return t.Runes[r]
	}
	return t.Keys[key]
}
