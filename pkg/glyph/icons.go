package glyph

// Glyph is a persona avatar icon. Personas store the Key; the Symbol is what
// gets rendered.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Order   int
}

func (g Glyph) String() string {
	return g.Symbol
}

// Unknown is rendered for icon keys that no longer resolve.
var Unknown = Glyph{Key: "unknown", Symbol: "❔", Meaning: "unknown"}

// DefaultGlyphs returns the icon catalog. The first entries are reserved for
// the built-in personas, the rest are selectable when creating a custom one.
func DefaultGlyphs() []Glyph {
	g := []Glyph{
		{Key: "teacher", Symbol: "👨‍🏫", Meaning: "teacher"},
		{Key: "gal", Symbol: "👱‍♀️", Meaning: "friend"},
		{Key: "hearts", Symbol: "🥰", Meaning: "smitten"},
		{Key: "grandma", Symbol: "👵", Meaning: "old woman"},
		{Key: "cool", Symbol: "😎", Meaning: "sunglasses"},
		{Key: "dragon", Symbol: "🐉", Meaning: "dragon"},

		{Key: "grin", Symbol: "😀", Meaning: "grinning"},
		{Key: "angel", Symbol: "😇", Meaning: "angel"},
		{Key: "hug", Symbol: "🤗", Meaning: "hugging"},
		{Key: "imp", Symbol: "😈", Meaning: "imp"},
		{Key: "man", Symbol: "👨", Meaning: "man"},
		{Key: "woman", Symbol: "👩", Meaning: "woman"},
		{Key: "grandpa", Symbol: "👴", Meaning: "old man"},
		{Key: "singer", Symbol: "🧑‍🎤", Meaning: "singer"},
		{Key: "suit", Symbol: "🧑‍💼", Meaning: "office worker"},
		{Key: "scientist", Symbol: "🧑‍🔬", Meaning: "scientist"},
		{Key: "artist", Symbol: "🧑‍🎨", Meaning: "artist"},
		{Key: "hero", Symbol: "🦸", Meaning: "superhero"},
		{Key: "mage", Symbol: "🧙", Meaning: "mage"},
		{Key: "vampire", Symbol: "🧛", Meaning: "vampire"},
		{Key: "merfolk", Symbol: "🧜", Meaning: "merfolk"},
		{Key: "cat", Symbol: "🐱", Meaning: "cat"},
		{Key: "dog", Symbol: "🐶", Meaning: "dog"},
		{Key: "fox", Symbol: "🦊", Meaning: "fox"},
		{Key: "rabbit", Symbol: "🐰", Meaning: "rabbit"},
		{Key: "bear", Symbol: "🐻", Meaning: "bear"},
		{Key: "panda", Symbol: "🐼", Meaning: "panda"},
		{Key: "lion", Symbol: "🦁", Meaning: "lion"},
		{Key: "alien", Symbol: "👽", Meaning: "alien"},
		{Key: "robot", Symbol: "🤖", Meaning: "robot"},
		{Key: "ghost", Symbol: "👻", Meaning: "ghost"},
		{Key: "skull", Symbol: "💀", Meaning: "skull"},
	}
	for i := range g {
		g[i].Order = i
	}
	return g
}

// Lookup resolves an icon key. Missing keys resolve to Unknown so a persona
// with a stale icon still renders.
func Lookup(key string) Glyph {
	for _, g := range DefaultGlyphs() {
		if g.Key == key {
			return g
		}
	}
	return Unknown
}

// ByOrder sorts glyphs by catalog order.
type ByOrder []Glyph

func (b ByOrder) Len() int           { return len(b) }
func (b ByOrder) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
func (b ByOrder) Less(i, j int) bool { return b[i].Order < b[j].Order }
