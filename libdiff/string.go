package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Edit is one step of a diff: Text is kept, inserted or deleted.
type Edit struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// DiffString returns the edits turning from into to. When both strings span
// several lines the diff is computed line by line, otherwise rune by rune.
func DiffString(from, to string) []Edit {
	diffCfg := diffpatch.New()
	var diffs []diffpatch.Diff
	if strings.Contains(from, "\n") && strings.Contains(to, "\n") {
		a, b, lines := diffCfg.DiffLinesToRunes(from, to)
		diffs = diffCfg.DiffMainRunes(a, b, false)
		diffs = diffCfg.DiffCharsToLines(diffs, lines)
	} else {
		diffs = diffCfg.DiffMain(from, to, false)
		diffs = diffCfg.DiffCleanupSemantic(diffs)
	}
	res := make([]Edit, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		e := Edit{Text: d.Text}
		switch d.Type {
		case diffpatch.DiffInsert:
			e.Op = Insert
		case diffpatch.DiffDelete:
			e.Op = Delete
		}
		res = append(res, e)
	}
	return res
}

// Size counts the runes inserted or deleted by edits.
func Size(edits []Edit) int {
	n := 0
	for _, e := range edits {
		if e.Op != Equal {
			n += len([]rune(e.Text))
		}
	}
	return n
}

// IsEmpty reports whether edits change nothing.
func IsEmpty(edits []Edit) bool {
	return Size(edits) == 0
}
