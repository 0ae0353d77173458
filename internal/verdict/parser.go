package verdict

import "strings"

// Answer tags the engine is instructed to emit.
const (
	tagConsistent   = "Final Answer: 1"
	tagContradicted = "Final Answer: 0"
)

// ParseVerdict extracts a binary verdict from the engine's free-text
// response, applying a strict-to-loose precedence:
//
//  1. an exact tagged line ("Final Answer: 1" / "Final Answer: 0") wins;
//     if both appear, the later occurrence is taken as the final answer;
//  2. else the trailing character of the trimmed response being '1' or '0';
//  3. else the presence of exactly one of the two digits anywhere in the
//     text;
//  4. else the response is unparseable and ok is false.
//
// Pure function: no engine calls, no side effects, independently testable.
func ParseVerdict(response string) (verdict int, ok bool) {
	oneIdx := strings.LastIndex(response, tagConsistent)
	zeroIdx := strings.LastIndex(response, tagContradicted)
	if oneIdx >= 0 || zeroIdx >= 0 {
		if oneIdx > zeroIdx {
			return Consistent, true
		}
		return Contradicted, true
	}

	trimmed := strings.TrimSpace(response)
	if len(trimmed) > 0 {
		switch trimmed[len(trimmed)-1] {
		case '1':
			return Consistent, true
		case '0':
			return Contradicted, true
		}
	}

	hasOne := strings.ContainsRune(response, '1')
	hasZero := strings.ContainsRune(response, '0')
	switch {
	case hasOne && !hasZero:
		return Consistent, true
	case hasZero && !hasOne:
		return Contradicted, true
	}

	return Contradicted, false
}
