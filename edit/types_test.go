package edit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeRecordString(t *testing.T) {
	assert.Equal(t, `update (root) TreeName: "a" -> "b"`,
		ChangeRecord{Field: "TreeName", Operation: OpUpdate, Old: "a", New: "b"}.String())
	assert.Equal(t, "remove person[@id='2'] person",
		ChangeRecord{Path: "person[@id='2']", Field: "person", Operation: OpRemove}.String())
}

func TestEditWarnings(t *testing.T) {
	cause := errors.New("boom")
	ws := EditWarnings{
		NewNoMatchWarning("person[@id='9']"),
		{Category: "other", Path: "x", Cause: cause},
		nil,
	}

	assert.Equal(t, []string{
		"person[@id='9']: person matched no existing person and was skipped",
		"x: boom",
		"",
	}, ws.Strings())
	assert.Len(t, ws.ByCategory(WarnNoMatch), 1)
	assert.Equal(t, cause, ws[1].Unwrap())
}

func TestMergeResultWarnings(t *testing.T) {
	var r MergeResult
	assert.False(t, r.HasWarnings())
	r.AddWarning(NewNoMatchWarning("p"))
	assert.True(t, r.HasWarnings())
	assert.Len(t, r.Warnings, 1)
	assert.Len(t, r.StructuredWarnings, 1)
}
