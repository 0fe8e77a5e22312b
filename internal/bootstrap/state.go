package bootstrap

import "fmt"

// State is the progress of a Bootstrapper
type State int

const (
	StateUnstarted State = iota
	StateStageResolved
	StateConfigLoaded
	StateBackendConstructed
	StateRepositoriesWired
	StateReady
	StateAborted
)

var stateNames = map[State]string{
	StateUnstarted:          "unstarted",
	StateStageResolved:      "stage_resolved",
	StateConfigLoaded:       "config_loaded",
	StateBackendConstructed: "backend_constructed",
	StateRepositoriesWired:  "repositories_wired",
	StateReady:              "ready",
	StateAborted:            "aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition can happen
func (s State) Terminal() bool {
	return s == StateReady || s == StateAborted
}
