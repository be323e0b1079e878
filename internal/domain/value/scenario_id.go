package value

import (
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"floor_predictor/pkg/errcodes"
)

// ScenarioID identifies a project scenario in the Urban API. Always positive.
type ScenarioID int64

func ParseScenarioID(s string) (ScenarioID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.NewInvalidArgumentError(
			"scenario id must be a positive integer, got "+strconv.Quote(s),
			failure.WithCode(errcodes.InvalidScenarioID),
			failure.WithDescription("Scenario id must be a positive integer"),
		)
	}

	return ScenarioID(id), nil
}

func (id ScenarioID) Int64() int64 {
	return int64(id)
}

func (id ScenarioID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
