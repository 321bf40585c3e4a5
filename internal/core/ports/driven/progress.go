package driven

// ProgressReporter receives progress for long-running stages.
type ProgressReporter interface {
	// Start announces a stage with the given number of steps.
	Start(stage string, total int)

	// Step reports that one step finished. err is nil on success.
	Step(index int, err error)

	// Finish closes the current stage.
	Finish()
}
