package organize

// ProgressObserver is told about every file a reorganize run finishes,
// whatever its outcome. It is called inline on the run's goroutine and
// should return quickly.
type ProgressObserver interface {
	// OnProgress reports that the file at zero-based index out of total is done.
	OnProgress(total, index int)
}

// DiagObserver is the diagnostic counterpart of ProgressObserver.
type DiagObserver interface {
	// OnProgress reports that the file at zero-based index out of total is
	// done and issues files have been flagged so far.
	OnProgress(total, index, issues int)
}

// ProgressFunc adapts a function to ProgressObserver.
type ProgressFunc func(total, index int)

// OnProgress calls f.
func (f ProgressFunc) OnProgress(total, index int) { f(total, index) }

// DiagFunc adapts a function to DiagObserver.
type DiagFunc func(total, index, issues int)

// OnProgress calls f.
func (f DiagFunc) OnProgress(total, index, issues int) { f(total, index, issues) }

type nopObserver struct{}

func (nopObserver) OnProgress(int, int) {}

type nopDiagObserver struct{}

func (nopDiagObserver) OnProgress(int, int, int) {}
