package models

// Stage is a step of the resume processing pipeline.
type Stage string

const (
	StageStart            Stage = "start"
	StageCVTextExtracted  Stage = "cv_text_extracted"
	StageJDTextExtracted  Stage = "jd_text_extracted"
	StageCVItemsExtracted Stage = "cv_items_extracted"
	StageJDItemsExtracted Stage = "jd_items_extracted"
	StageScoreComputed    Stage = "score_computed"
	StageEnriched         Stage = "enriched"
	StageDone             Stage = "done"
)
