package shutdown

// Please add the dependencies if you add your own priority here.
// Otherwise investigating deadlocks at shutdown is much more complicated.

const (
	PriorityCloseDatabase  = iota // no dependencies
	PriorityGovernance            // depends on PriorityCloseDatabase
	PriorityMetricsUpdater        // depends on PriorityGovernance
	PriorityRestAPI               // depends on PriorityGovernance
	PriorityPrometheus
)
