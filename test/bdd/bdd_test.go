package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/spaceeconomy-go/test/bdd/steps"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Domain features run next to their packages; this suite drives the mediator pipeline
	steps.InitializeSimulationScenario(sc)
}
