package game

// Tone tells the host how to style a message (for example which color code to use).
type Tone int

const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneError
	ToneHeader
	ToneMuted
)

// Message is one line of feedback for a player.
type Message struct {
	Tone Tone
	Text string
}

func info(text string) Message    { return Message{Tone: ToneInfo, Text: text} }
func success(text string) Message { return Message{Tone: ToneSuccess, Text: text} }
func failure(text string) Message { return Message{Tone: ToneError, Text: text} }
func header(text string) Message  { return Message{Tone: ToneHeader, Text: text} }
func muted(text string) Message   { return Message{Tone: ToneMuted, Text: text} }

// Player-facing texts.
const (
	msgLocked             = "Block locked successfully! Only you and trusted players can access it."
	msgNotProtectable     = "This block cannot be locked. Only containers, doors, and valuable blocks can be protected."
	msgAlreadyLocked      = "This block is already locked."
	msgNotLocked          = "This block is not locked."
	msgUnlocked           = "Block unlocked successfully!"
	msgOnlyOwnerUnlock    = "Only the owner can unlock this block."
	msgOnlyOwnerTrust     = "Only the owner can add trusted players."
	msgTrustAdded         = "Player added to trusted list."
	msgTrustRemoved       = "Player removed from trusted list."
	msgLockedBy           = "This block is locked by %s"
	msgCannotBreak        = "You cannot break a block locked by %s"
	msgProtectionRemoved  = "Protection removed from block."
	msgPlayersOnly        = "This command can only be used by players."
	msgLockMode           = "Lock mode enabled! Right-click a block to lock it."
	msgLockModeHint       = "Only chests, doors, furnaces, and containers can be locked."
	msgUnlockMode         = "Unlock mode enabled! Right-click a locked block to unlock it."
	msgTrustMode          = "Trust mode enabled! Right-click a locked block to %s %s."
	msgPlayerNotFound     = "Player '%s' not found. They must be online to trust them."
	msgSelfTrust          = "You cannot trust yourself!"
	msgTrustUsage         = "Usage: /blocklocker %s <player>"
	msgUnknownSubcommand  = "Unknown subcommand '%s'."
	msgSomethingWentWrong = "Something went wrong. Please try again."
)
