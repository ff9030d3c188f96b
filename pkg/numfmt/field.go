package numfmt

// Field is a numeric entry with two states: the raw text being typed and the
// committed value. They are reconciled only by Commit or Set.
type Field struct {
	raw   string
	value float64
}

// NewField returns a field already committed to v.
func NewField(v float64) *Field {
	f := &Field{}
	f.Set(v)
	return f
}

// Edit replaces the raw text. The committed value is unchanged.
func (f *Field) Edit(raw string) {
	f.raw = Filter(raw)
}

// Pending is the value the raw text would commit to.
func (f *Field) Pending() float64 {
	return Parse(f.raw)
}

// Commit parses the raw text, stores it as the value and reformats the
// display text. Zero displays as empty.
func (f *Field) Commit() float64 {
	f.Set(Parse(f.raw))
	return f.value
}

// Set commits v from outside, discarding any pending text.
func (f *Field) Set(v float64) {
	f.value = v
	if v == 0 {
		f.raw = ""
		return
	}
	f.raw = Amount(v)
}

// Raw returns the display text.
func (f *Field) Raw() string { return f.raw }

// Value returns the committed value.
func (f *Field) Value() float64 { return f.value }
