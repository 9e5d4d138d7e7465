package dflog

// NullProgressBar implements ProgressBar as a no-op, for callers that don't
// want progress output (library use, non-interactive CLI invocations).
type NullProgressBar struct{}

func (NullProgressBar) SetTotal(int) {}
func (NullProgressBar) Set(int)      {}
func (NullProgressBar) Start()       {}
func (NullProgressBar) Finish()      {}
