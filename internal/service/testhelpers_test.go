package service

import (
	"testing"

	"asd-screen/internal/domain"
	"asd-screen/internal/model"
	"asd-screen/internal/model/modeltest"
)

func testCapability(t *testing.T) *model.Capability {
	t.Helper()
	capability, err := modeltest.Capability(t.TempDir())
	if err != nil {
		t.Fatalf("load capability: %v", err)
	}
	return capability
}

func validPersonalInfo() domain.PersonalInfo {
	return domain.PersonalInfo{
		Age:           "29",
		Gender:        "f",
		Ethnicity:     "White-European",
		Jaundice:      "no",
		Autism:        "yes",
		CountryOfRes:  "United States",
		UsedAppBefore: "no",
		Relation:      "Self",
	}
}

func allYesScores(result float64) domain.BehavioralScores {
	var scores domain.BehavioralScores
	for i := range scores.Answers {
		scores.Answers[i] = 1
	}
	scores.Result = result
	return scores
}
