package textobject

// SelectionMode determines how a resolved range is interpreted for selection.
type SelectionMode uint8

const (
	// SelectChar is character-wise selection.
	SelectChar SelectionMode = iota

	// SelectLine is line-wise selection; rows are snapped to line
	// boundaries by the selection applier.
	SelectLine

	// SelectBlock is block/column (rectangular) selection.
	SelectBlock
)

// String returns the mode name.
func (m SelectionMode) String() string {
	switch m {
	case SelectChar:
		return "charwise"
	case SelectLine:
		return "linewise"
	case SelectBlock:
		return "blockwise"
	default:
		return "unknown"
	}
}

// Method tags the invocation context a selection mode is configured for.
type Method uint8

const (
	// MethodOperatorPending is resolution on behalf of a pending operator.
	MethodOperatorPending Method = iota

	// MethodVisual is resolution from a visual-family mode.
	MethodVisual
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodOperatorPending:
		return "operator-pending"
	case MethodVisual:
		return "visual"
	default:
		return "unknown"
	}
}

// Invocation identifies how the user triggered a resolution.
type Invocation uint8

const (
	// InvokeOperatorPending is a trigger while an operator awaits a target.
	InvokeOperatorPending Invocation = iota

	// InvokeVisual is a trigger from one of the visual modes.
	InvokeVisual
)

// Method maps the invocation to its configuration method tag.
func (i Invocation) Method() Method {
	if i == InvokeVisual {
		return MethodVisual
	}
	return MethodOperatorPending
}

// String returns the invocation name.
func (i Invocation) String() string {
	if i == InvokeVisual {
		return "visual"
	}
	return "operator-pending"
}

// Submode is the editor's live visual submode at invocation time.
// It is an environmental input: when the user is already in a visual
// variant, that choice overrides any configured selection mode.
type Submode uint8

const (
	// SubmodeNone is the neutral indicator (operator-pending, no live
	// visual submode); the configured selection mode is honored.
	SubmodeNone Submode = iota

	// SubmodeChar is live character-visual (v).
	SubmodeChar

	// SubmodeLine is live line-visual (V).
	SubmodeLine

	// SubmodeBlock is live block-visual (ctrl-v).
	SubmodeBlock
)

// SelectionMode returns the selection mode this submode forces, and whether
// it forces one at all (SubmodeNone does not).
func (s Submode) SelectionMode() (SelectionMode, bool) {
	switch s {
	case SubmodeChar:
		return SelectChar, true
	case SubmodeLine:
		return SelectLine, true
	case SubmodeBlock:
		return SelectBlock, true
	default:
		return SelectChar, false
	}
}

// String returns the submode name.
func (s Submode) String() string {
	switch s {
	case SubmodeChar:
		return "v"
	case SubmodeLine:
		return "V"
	case SubmodeBlock:
		return "ctrl-v"
	default:
		return "none"
	}
}
