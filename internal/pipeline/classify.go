package pipeline

// Column positions within a row. Column 0 is unused by the classifier.
const (
	keyColumn   = 1
	valueColumn = 2
)

// Section is one output block accumulated from consecutive rows.
type Section struct {
	Title    string
	Img      string
	Text     string
	Header   string
	Template string
}

// IsEmpty reports whether the section carries nothing worth rendering.
func (s Section) IsEmpty() bool {
	return s.Title == "" && s.Img == "" && s.Text == "" && s.Header == ""
}

// classifyState is the fold accumulator: the open section, if any, and the
// sections already emitted.
type classifyState struct {
	current *Section
	out     []Section
}

// Classify groups rows into sections using rules.
//
// A blank row closes the open section. A row with a key, no value and a key
// matching no field rule is a header: it closes the open section and opens a
// named one. Other rows fill the open section (opening an anonymous one if
// needed) as title, image or text, first match wins; rows matching nothing
// are ignored. Only non-empty sections are emitted, in input order.
func Classify(rows [][]string, rules Rules) []Section {
	var st classifyState
	for _, row := range rows {
		st = st.step(row, rules)
	}
	return st.flush().out
}

// step folds one row into the state.
func (st classifyState) step(row []string, rules Rules) classifyState {
	key := NormalizeKey(fieldAt(row, keyColumn))
	val := TrimSpace(fieldAt(row, valueColumn))

	if isBlankRow(row) {
		return st.flush()
	}

	if isHeader(key, val, rules) {
		st = st.flush()
		st.current = &Section{Header: key, Template: rules.templateFor(key)}
		return st
	}

	if st.current == nil {
		st.current = &Section{Template: rules.defaultTemplate()}
	}

	switch {
	case rules.isTitleKey(key):
		st.current.Title = val
	case rules.isImageKey(key):
		st.current.Img = val
	case rules.isTextKey(key):
		if st.current.Text == "" {
			st.current.Text = val
		} else {
			st.current.Text += "\n" + val
		}
	}
	return st
}

// flush emits the open section when it has content and closes it.
func (st classifyState) flush() classifyState {
	if st.current != nil && !st.current.IsEmpty() {
		st.out = append(st.out, *st.current)
	}
	st.current = nil
	return st
}

// isHeader reports whether a row opens a named section.
func isHeader(key, val string, rules Rules) bool {
	return key != "" && val == "" &&
		!rules.isTitleKey(key) &&
		!rules.isImageKey(key) &&
		!rules.isTextKey(key)
}
