package vtui

import "fmt"

// Key identifies a non-character key.
type Key uint8

const (
	KeyNone Key = iota
	// KeyRune is a character key; KeyCode.Rune holds the character.
	KeyRune
	KeyBackspace
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyBackTab
	KeyDelete
	KeyInsert
	KeyEsc
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
	KeyMenu
	KeyKeypadBegin
	KeyF     // KeyCode.Num holds the function key number
	KeyMedia // KeyCode.Media holds the media key
	KeyModifier
)

var keyNames = map[Key]string{
	KeyBackspace:   "backspace",
	KeyEnter:       "enter",
	KeyLeft:        "left",
	KeyRight:       "right",
	KeyUp:          "up",
	KeyDown:        "down",
	KeyHome:        "home",
	KeyEnd:         "end",
	KeyPageUp:      "pgup",
	KeyPageDown:    "pgdown",
	KeyTab:         "tab",
	KeyBackTab:     "shift+tab",
	KeyDelete:      "delete",
	KeyInsert:      "insert",
	KeyEsc:         "esc",
	KeyCapsLock:    "capslock",
	KeyScrollLock:  "scrolllock",
	KeyNumLock:     "numlock",
	KeyPrintScreen: "printscreen",
	KeyPause:       "pause",
	KeyMenu:        "menu",
	KeyKeypadBegin: "begin",
}

// MediaKey is a media control key.
type MediaKey uint8

const (
	MediaPlay MediaKey = iota
	MediaPause
	MediaPlayPause
	MediaReverse
	MediaStop
	MediaFastForward
	MediaRewind
	MediaTrackNext
	MediaTrackPrevious
	MediaRecord
	MediaLowerVolume
	MediaRaiseVolume
	MediaMuteVolume
)

// Modifier is a modifier key reported on its own.
type Modifier uint8

const (
	ModShift Modifier = iota
	ModCtrl
	ModAlt
	ModSuper
	ModHyper
	ModMeta
	ModIsoLevel3Shift
	ModIsoLevel5Shift
)

// Side tells left and right modifier keys apart.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// KeyCode is a normalized key.
type KeyCode struct {
	Key      Key
	Rune     rune
	Num      uint8
	Media    MediaKey
	Modifier Modifier
	Side     Side
	Alt      bool // alt/meta held with the key
	Ctrl     bool // ctrl held with the key
}

// Char returns the KeyCode for a character key.
func Char(r rune) KeyCode {
	return KeyCode{Key: KeyRune, Rune: r}
}

// Special returns the KeyCode for a named key.
func Special(k Key) KeyCode {
	return KeyCode{Key: k}
}

// Function returns the KeyCode for function key Fn.
func Function(n uint8) KeyCode {
	return KeyCode{Key: KeyF, Num: n}
}

// Media returns the KeyCode for a media key.
func Media(m MediaKey) KeyCode {
	return KeyCode{Key: KeyMedia, Media: m}
}

// ModifierKey returns the KeyCode for a modifier pressed on its own.
func ModifierKey(m Modifier, side Side) KeyCode {
	return KeyCode{Key: KeyModifier, Modifier: m, Side: side}
}

// IsRune reports whether k is the character r with no modifiers.
func (k KeyCode) IsRune(r rune) bool {
	return k.Key == KeyRune && k.Rune == r && !k.Alt && !k.Ctrl
}

func (k KeyCode) String() string {
	var s string
	switch k.Key {
	case KeyRune:
		s = string(k.Rune)
	case KeyF:
		s = fmt.Sprintf("f%d", k.Num)
	case KeyMedia:
		s = fmt.Sprintf("media(%d)", k.Media)
	case KeyModifier:
		s = fmt.Sprintf("modifier(%d,%d)", k.Modifier, k.Side)
	case KeyNone:
		s = "none"
	default:
		s = keyNames[k.Key]
	}
	if k.Alt {
		s = "alt+" + s
	}
	if k.Ctrl {
		s = "ctrl+" + s
	}
	return s
}
