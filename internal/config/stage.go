package config

import (
	"strings"

	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
)

// Stage is the deployment environment the process runs in
type Stage string

const (
	StageTest       Stage = "TEST"
	StageStaging    Stage = "STAGING"
	StageProduction Stage = "PRODUCTION"
)

// StageEnvKey names the variable StageFromEnv reads
const StageEnvKey = "STAGE"

// Stages lists every known stage
var Stages = []Stage{StageTest, StageStaging, StageProduction}

// ResolveStage case-folds raw and matches it against the known stages.
// Anything else, including the empty string, is an UnknownDeploymentStage error.
func ResolveStage(raw string) (Stage, error) {
	normalized := Stage(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range Stages {
		if normalized == s {
			return s, nil
		}
	}
	return "", apperrors.UnknownDeploymentStage(raw)
}

// StageFromEnv resolves the stage from the process environment.
// An absent STAGE means TEST; a STAGE that is set but empty is rejected.
func StageFromEnv() (Stage, error) {
	v := newViper()
	if !v.IsSet(stageKey) {
		return StageTest, nil
	}
	return ResolveStage(v.GetString(stageKey))
}

// IsTest reports whether s runs on in-process backends
func (s Stage) IsTest() bool {
	return s == StageTest
}

// Verbose reports whether debug logging is enabled for s
func (s Stage) Verbose() bool {
	return s == StageTest || s == StageStaging
}

func (s Stage) String() string {
	return string(s)
}
