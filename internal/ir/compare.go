package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// MismatchError reports two statements that were expected to be equal.
type MismatchError struct {
	Left, Right Stmt

	// MethodIndex is the first differing method when both sides are Methods,
	// -1 otherwise. LeftMethod/RightMethod are nil past the end of a list.
	MethodIndex int
	LeftMethod  *Method
	RightMethod *Method

	// Diff is a unified diff of the indented JSON of both statements.
	Diff string
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	if e.MethodIndex >= 0 {
		fmt.Fprintf(&b, "methods were not equal at index %d:\n", e.MethodIndex)
		fmt.Fprintf(&b, "  left:  %s\n", describeMethod(e.LeftMethod))
		fmt.Fprintf(&b, "  right: %s\n", describeMethod(e.RightMethod))
	}
	fmt.Fprintf(&b, "statements were not equal (%s vs %s)", stmtLabel(e.Left), stmtLabel(e.Right))
	if e.Diff != "" {
		b.WriteString(":\n")
		b.WriteString(e.Diff)
	}
	return b.String()
}

// Equal reports whether two statements are structurally equal.
// Nil and empty lists compare equal.
func Equal(a, b Stmt) bool {
	da, errA := MarshalStmt(a)
	db, errB := MarshalStmt(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(da, db)
}

// Compare returns nil when a and b are equal and a *MismatchError otherwise.
//
// When both statements are Methods, the method lists are compared element by
// element first so the error names the first differing method pair instead of
// the whole list. Compare has no other side effects.
func Compare(a, b Stmt) error {
	if Equal(a, b) {
		return nil
	}

	mismatch := &MismatchError{
		Left:        a,
		Right:       b,
		MethodIndex: -1,
		Diff:        stmtDiff(a, b),
	}

	am, aok := a.(*Methods)
	bm, bok := b.(*Methods)
	if aok && bok {
		if i, ok := firstMethodMismatch(am.Methods, bm.Methods); ok {
			mismatch.MethodIndex = i
			if i < len(am.Methods) {
				mismatch.LeftMethod = &am.Methods[i]
			}
			if i < len(bm.Methods) {
				mismatch.RightMethod = &bm.Methods[i]
			}
		}
	}

	return mismatch
}

// firstMethodMismatch returns the index of the first differing pair, or the
// length of the shorter list when one is a prefix of the other.
func firstMethodMismatch(left, right []Method) (int, bool) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		l, _ := json.Marshal(left[i])
		r, _ := json.Marshal(right[i])
		if !bytes.Equal(l, r) {
			return i, true
		}
	}
	if len(left) != len(right) {
		return n, true
	}
	return 0, false
}

func stmtDiff(a, b Stmt) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(indentStmt(a)),
		B:        difflib.SplitLines(indentStmt(b)),
		FromFile: "left",
		ToFile:   "right",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}

func indentStmt(s Stmt) string {
	data, err := MarshalStmt(s)
	if err != nil {
		return fmt.Sprintf("%#v\n", s)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data) + "\n"
	}
	buf.WriteByte('\n')
	return buf.String()
}

func stmtLabel(s Stmt) string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s", s.StmtKind(), s.Symbol())
}

func describeMethod(m *Method) string {
	if m == nil {
		return "<none>"
	}
	side := "-"
	if m.IsClass {
		side = "+"
	}
	return fmt.Sprintf("%s[%s] (%s)", side, m.Selector, m.Kind)
}
