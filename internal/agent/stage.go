package agent

import "github.com/yousuf-kodexo/livekitPOC/internal/models"

// Stage is a named phase of the scripted interview, derived from the count
// of caller turns. It is never stored.
type Stage string

const (
	StageIntroduction       Stage = "introduction"
	StageIntroductionName   Stage = "introduction_name"
	StageDemographics       Stage = "demographics"
	StageInjuryHistory      Stage = "injury_history"
	StageDailyFunctioning   Stage = "daily_functioning"
	StagePastMedicalHistory Stage = "past_medical_history"
	StageReviewOfSystems    Stage = "review_of_systems"
	StageFamilyHistory      Stage = "family_history"
	StageSocialHistory      Stage = "social_history"
	StageOccupational       Stage = "occupational_history"
	StageSummary            Stage = "summary"
)

// stageThresholds maps inclusive upper bounds of caller-turn counts to
// stages, in ascending order. Counts above the last bound classify as
// summary.
var stageThresholds = []struct {
	maxUserTurns int
	stage        Stage
}{
	{2, StageIntroductionName},
	{5, StageDemographics},
	{15, StageInjuryHistory},
	{25, StageDailyFunctioning},
	{35, StagePastMedicalHistory},
	{50, StageReviewOfSystems},
	{55, StageFamilyHistory},
	{70, StageSocialHistory},
	{80, StageOccupational},
}

// ClassifyStage maps a transcript to its interview phase. An empty
// transcript is always the introduction; otherwise the first threshold whose
// bound covers the caller-turn count wins. Total and monotonic for every
// non-negative count.
func ClassifyStage(messages []models.Message) Stage {
	if len(messages) == 0 {
		return StageIntroduction
	}

	userTurns := models.UserTurns(messages)
	for _, t := range stageThresholds {
		if userTurns <= t.maxUserTurns {
			return t.stage
		}
	}
	return StageSummary
}
