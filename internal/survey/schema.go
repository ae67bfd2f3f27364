package survey

// Positional layout of the Google Forms FB_PUBLIC_LOAD_DATA_ payload.
//
// The payload is an undocumented nested array; these indices were
// reverse-engineered from live forms and are the single place to touch when
// Google shifts the format. Extractors must go through the accessors below
// instead of indexing raw slices.
const (
	publicLoadDataMarker = "var FB_PUBLIC_LOAD_DATA_ ="

	// Top-level slots.
	idxFormBlock = 1
	idxDocTitle  = 3
	idxFormID    = 14

	// Slots inside the form block.
	blockIdxDescription = 0
	blockIdxQuestions   = 1
	blockIdxTitle       = 8
	blockIdxSettings    = 10

	// Per-question entry: [id, label, help, typeTag, ...].
	questionIdxType = 3

	// typeTagPageBreak marks a section break entry in the question list.
	// Such entries are not questions and never count toward questionCount.
	typeTagPageBreak = 8

	// Slots inside the settings sub-array.
	settingsIdxQuiz          = 0
	settingsIdxRequiresLogin = 1
)

// jsonArray wraps a decoded positional payload with tolerant accessors: a
// missing slot or a type mismatch yields the zero value, never a panic.
type jsonArray []any

func asArray(v any) (jsonArray, bool) {
	arr, ok := v.([]any)
	return jsonArray(arr), ok
}

func (a jsonArray) arrayAt(i int) (jsonArray, bool) {
	if i < 0 || i >= len(a) {
		return nil, false
	}
	return asArray(a[i])
}

func (a jsonArray) stringAt(i int) string {
	if i < 0 || i >= len(a) {
		return ""
	}
	s, _ := a[i].(string)
	return s
}

func (a jsonArray) numberAt(i int) (float64, bool) {
	if i < 0 || i >= len(a) {
		return 0, false
	}
	n, ok := a[i].(float64)
	return n, ok
}

// flagAt reads a truthy slot: the payload encodes booleans as 0/1 numbers or
// as nested [n] arrays depending on position.
func (a jsonArray) flagAt(i int) bool {
	if n, ok := a.numberAt(i); ok {
		return n != 0
	}
	if nested, ok := a.arrayAt(i); ok {
		if n, ok := nested.numberAt(0); ok {
			return n != 0
		}
	}
	return false
}
