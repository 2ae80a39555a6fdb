package tui

// Key strings as reported by tea.KeyMsg.String.
const (
	keyQuit   = "q"
	keyCtrlC  = "ctrl+c"
	keyEnter  = "enter"
	keyEsc    = "esc"
	keySpace  = " "
	keyRight  = "right"
	keyLeft   = "left"
	keyA      = "a"
	keyC      = "c"
	keyG      = "g"
	keyShiftG = "G"
	keyH      = "h"
	keyL      = "l"
	keyN      = "n"
	keyP      = "p"
	keyR      = "r"
	keyS      = "s"
	keyX      = "x"
)

const helpText = "[space] Toggle  [a] Page  [←/→] Prev/Next  [g/G] First/Last  [c] Custom  " +
	"[s] Sort  [r] Refresh  [x] Reset  [enter] Details  [q] Quit"
