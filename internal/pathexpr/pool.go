package pathexpr

import "sync"

// Typical expressions are three to five steps deep.
const stepSliceCap = 8

var stepSlicePool = sync.Pool{
	New: func() any {
		s := make([]Step, 0, stepSliceCap)
		return &s
	},
}

func getStepSlice() *[]Step {
	s := stepSlicePool.Get().(*[]Step)
	*s = (*s)[:0]
	return s
}

func putStepSlice(s *[]Step) {
	if s == nil || cap(*s) > 32 {
		return
	}
	stepSlicePool.Put(s)
}
