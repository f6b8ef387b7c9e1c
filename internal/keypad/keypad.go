package keypad

// Kind classifies a keypad press.
type Kind uint8

const (
	// KindInvalid marks keys with no meaning to the core; they are ignored.
	KindInvalid Kind = iota
	// KindDigit is a decimal digit used to build a suspension duration.
	KindDigit
	// KindCommit is the hash key: commits the entered duration, or starts an
	// indefinite suspension when pressed with no digits entered.
	KindCommit
	// KindReset is the star key: resets the whole gate alarm.
	KindReset
)

// Key is one classified keypad press.
type Key struct {
	// Kind tells the core how to act on the press.
	Kind Kind
	// Digit is the decimal value, valid only when Kind is KindDigit.
	Digit int
}

// Parse classifies a raw keypad character. Unmapped characters yield a
// KindInvalid key.
func Parse(r rune) Key {
	switch {
	case r >= '0' && r <= '9':
		return Key{Kind: KindDigit, Digit: int(r - '0')}
	case r == '#':
		return Key{Kind: KindCommit}
	case r == '*':
		return Key{Kind: KindReset}
	default:
		return Key{Kind: KindInvalid}
	}
}
