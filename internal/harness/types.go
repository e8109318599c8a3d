package harness

// StepEvent records one executed step for the trace.
type StepEvent struct {
	Index int    `json:"index"`
	Op    string `json:"op"`
	Table string `json:"table"`

	// Error is the error the step returned, if any.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every step behaved as expected and
	// every check held.
	Pass bool `json:"pass"`

	// Trace lists the steps that ran, in order.
	Trace []StepEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Render is the final state of every table, as Database.Render prints it.
	Render string `json:"render"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []StepEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStepTrace records an executed step.
func (r *Result) AddStepTrace(index int, step Step, err error) {
	ev := StepEvent{Index: index, Op: step.Op, Table: step.Table}
	if err != nil {
		ev.Error = err.Error()
	}
	r.Trace = append(r.Trace, ev)
}
