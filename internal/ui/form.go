package ui

import (
	"strings"
	"unicode"

	"ripple/internal/wave"
)

// maxFieldLen bounds the text a parameter field accepts.
const maxFieldLen = 16

// Field is one editable parameter box.
type Field struct {
	Key   string
	Label string
	Text  string
}

// ParamForm holds the text of the β, ω and λ fields between commits. Edits
// only reach the controller when Submit is called.
type ParamForm struct {
	fields  []Field
	focus   int
	diag    string
	diagErr bool
}

// NewParamForm returns a form showing p.
func NewParamForm(p wave.Params) *ParamForm {
	f := &ParamForm{
		fields: []Field{
			{Key: wave.KeyBeta, Label: "β damping"},
			{Key: wave.KeyOmega, Label: "ω frequency"},
			{Key: wave.KeyLambda, Label: "λ speed"},
		},
		focus: -1,
	}
	f.Load(p)
	return f
}

// Load replaces the field text with p.
func (f *ParamForm) Load(p wave.Params) {
	f.fields[0].Text = wave.Format(p.Beta)
	f.fields[1].Text = wave.Format(p.Omega)
	f.fields[2].Text = wave.Format(p.Lambda)
}

// Fields returns the fields in display order.
func (f *ParamForm) Fields() []Field { return f.fields }

// Focus returns the focused field index, or -1.
func (f *ParamForm) Focus() int { return f.focus }

// Editing reports whether a field has keyboard focus.
func (f *ParamForm) Editing() bool { return f.focus >= 0 }

// SetFocus focuses field i; out of range values clear focus.
func (f *ParamForm) SetFocus(i int) {
	if i < 0 || i >= len(f.fields) {
		i = -1
	}
	f.focus = i
}

// FocusNext moves focus to the following field, wrapping.
func (f *ParamForm) FocusNext() {
	f.focus = (f.focus + 1) % len(f.fields)
}

// Insert appends typed characters to the focused field. Control characters
// are dropped.
func (f *ParamForm) Insert(rs []rune) {
	if f.focus < 0 {
		return
	}
	field := &f.fields[f.focus]
	for _, r := range rs {
		if unicode.IsControl(r) || len([]rune(field.Text)) >= maxFieldLen {
			continue
		}
		field.Text += string(r)
	}
}

// Backspace removes the last character of the focused field.
func (f *ParamForm) Backspace() {
	if f.focus < 0 {
		return
	}
	field := &f.fields[f.focus]
	rs := []rune(field.Text)
	if len(rs) == 0 {
		return
	}
	field.Text = string(rs[:len(rs)-1])
}

// Values returns the raw text of the three fields.
func (f *ParamForm) Values() (beta, omega, lambda string) {
	return f.fields[0].Text, f.fields[1].Text, f.fields[2].Text
}

// Submit hands the field text to commit and records the outcome as the
// diagnostic line. On success the fields are reloaded from committed so
// they show the canonical values.
func (f *ParamForm) Submit(commit func(beta, omega, lambda string) error, committed func() wave.Params) error {
	f.focus = -1
	if err := commit(f.Values()); err != nil {
		f.SetDiagnostic(err.Error(), true)
		return err
	}
	if committed != nil {
		f.Load(committed())
	}
	f.SetDiagnostic("parameters set", false)
	return nil
}

// SetDiagnostic replaces the status line. Multi-line messages are folded
// onto one line.
func (f *ParamForm) SetDiagnostic(msg string, isErr bool) {
	f.diag = strings.Join(strings.Fields(strings.ReplaceAll(msg, "\n", "; ")), " ")
	f.diagErr = isErr
}

// Diagnostic returns the status line and whether it reports an error.
func (f *ParamForm) Diagnostic() (string, bool) { return f.diag, f.diagErr }

// wrap splits msg into lines of at most width characters on word boundaries.
func wrap(msg string, width int) []string {
	if msg == "" || width <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(msg) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
